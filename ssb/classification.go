package ssb

import "strconv"

// Classification identifies a classification in the SSB Klass API.
// Any positive id is valid; the constants name the ones with bundled providers.
type Classification int

const (
	Sex              Classification = 2
	IndustryGrouping Classification = 6
	Occupations      Classification = 7
	MaritalStatus    Classification = 19
	SmallGame        Classification = 74
	Counties         Classification = 104
	Communes         Classification = 131
	Countries        Classification = 552
)

var classificationNames = map[Classification]string{
	Sex:              "Sex",
	IndustryGrouping: "IndustryGrouping",
	Occupations:      "Occupations",
	MaritalStatus:    "MaritalStatus",
	SmallGame:        "SmallGame",
	Counties:         "Counties",
	Communes:         "Communes",
	Countries:        "Countries",
}

// String returns the constant name, or the numeric id for unnamed classifications.
func (c Classification) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}
