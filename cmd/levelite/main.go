package main

import "github.com/izumiishikawa/levelite-sub000/cmd/levelite/root"

func main() {
	root.Execute()
}
