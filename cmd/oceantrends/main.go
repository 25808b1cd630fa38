// Command oceantrends fetches tide, wave and temperature data once, aligns it
// and renders the result with one of the consumers.
package main

func main() {
	Execute()
}
