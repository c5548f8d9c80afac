// Command wordle runs the Wordle HTTP backend ("wordle serve") or a
// terminal game ("wordle play").
package main

func main() {
	Execute()
}
