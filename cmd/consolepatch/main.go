// Package main provides the consolepatch CLI, a minimal launcher host that
// bootstraps the console patch service.
package main

func main() {
	Execute()
}
