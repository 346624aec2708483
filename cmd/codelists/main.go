// Command codelists lists and serves the bundled codelists.
package main

func main() {
	Execute()
}
