// Package main provides the trak CLI: three interactive record-management
// programs sharing one storage layout.
package main

func main() {
	Execute()
}
