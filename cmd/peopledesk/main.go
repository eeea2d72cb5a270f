package main

import "github.com/peopledesk/peopledesk/cmd/peopledesk/cmd"

func main() {
	cmd.Execute()
}
