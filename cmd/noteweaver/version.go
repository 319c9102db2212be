package main

var version = "v0.1.0"
