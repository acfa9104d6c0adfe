package main

import "github.com/ogulcanaydogan/llm-cost-insights/internal/cli"

func main() {
	cli.Execute()
}
