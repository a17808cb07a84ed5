package main

import (
	"fmt"
	"os"

	ihex "github.com/lnming/libcintelhex"
)

func main() {
	path := "example.hex"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	rs, err := ihex.FromFile(path)
	if err != nil {
		panic(err)
	}

	for _, r := range rs.Records() {
		fmt.Printf("%-24s addr=0x%04X len=%d\n", r.Type, r.Address, r.Length)
	}

	segments, err := rs.DataSegments()
	if err != nil {
		panic(err)
	}
	for _, s := range segments {
		fmt.Printf("segment 0x%08X: % X\n", s.Address, s.Data)
	}

	if addr, ok := rs.StartAddress(); ok {
		fmt.Printf("start address 0x%08X\n", addr)
	}
	fmt.Printf("%d data bytes total\n", rs.Size())
}
