package main

import "github.com/ahoin001/soma/cmd/soma"

func main() {
	soma.Execute()
}
