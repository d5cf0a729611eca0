package main

import "github.com/ticketloop/reminder-scheduler/cmd"

func main() {
	cmd.Execute()
}
