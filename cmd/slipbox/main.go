// Command slipbox draws greeting-card slips in the terminal, over HTTP/SSE
// for a browser renderer, or as MCP tools for agents.
package main

func main() {
	Execute()
}
