package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/wordcrawl"
)

const menu = `
Choose your command by inputting "1", "2", or "3":
1 - Query by keywords
2 - Display the most common N words
3 - Exit
`

// interactive runs the query menu until the user exits or input ends.
func (c *WordsCmd) interactive(deps *Dependencies, in *bufio.Scanner, table wordcrawl.FrequencyTable) error {
	for {
		fmt.Fprint(deps.Stdout, menu)
		if !in.Scan() {
			return in.Err()
		}

		switch strings.TrimSpace(in.Text()) {
		case "1":
			fmt.Fprint(deps.Stdout, `Input a list of keywords separated by commas (e.g. "dog, cat, java, santiago"): `)
			if !in.Scan() {
				return in.Err()
			}
			writeKeywords(deps.Stdout, keywordCounts(table, strings.Split(in.Text(), ",")))
		case "2":
			fmt.Fprint(deps.Stdout, "Input the number of most common words you'd like to display: ")
			if !in.Scan() {
				return in.Err()
			}
			n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
			if err != nil || n < 0 {
				fmt.Fprintln(deps.Stdout, "Please input a non-negative whole number.")
				continue
			}
			writeTop(deps.Stdout, table.TopN(n))
		case "3":
			return nil
		default:
			fmt.Fprintln(deps.Stdout, `You did not enter a valid input. Please input either "1", "2", or "3"`)
		}
	}
}
