// Package main is the entry point for the SmartDoc AI backend.
//
// @title          SmartDoc AI API
// @version        1.0.0
// @description    AI-powered legal document analysis for South African businesses.
// @host           localhost:8000
// @BasePath       /
// @schemes        http
package main

func main() {
	Execute()
}
