/*
Package gclplugin provides golangci-lint plugin integration for the [valueset] analyzer.

# Usage

1. Add a file `.custom-gcl.yaml` to your source with:

	---
	version: v2.7.0

	name: golangci-lint
	destination: .

	plugins:
	  - module: github.com/l3aro/go-valueset
	    import: github.com/l3aro/go-valueset/gclplugin
	    version: latest

2. Run `golangci-lint custom` from your project root.

3. Configure the linter in `.golangci.yaml`:

	---
	version: "2"
	linters:
	  enable:
	    - valueset
	  settings:
	    custom:
	      valueset:
	        type: module
	        settings:
	          min-values: 2

[valueset]: https://pkg.go.dev/github.com/l3aro/go-valueset/analyzer
*/
package gclplugin
