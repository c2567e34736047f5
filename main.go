// Package main API.
//
// go-signpdf provides a REST API for overlaying signature images on PDF files.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- application/pdf
//
// swagger:meta
package main

import "go-signpdf/cmd"

func main() {
	cmd.Execute()
}
