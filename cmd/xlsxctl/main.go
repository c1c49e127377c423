// Command xlsxctl inspects and builds spreadsheet workbooks.
package main

func main() {
	execute()
}
