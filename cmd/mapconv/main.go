// mapconv converts an ASCII level sketch to the YAML map format.
//
// Legend:
//
//	#  wall (collidable)      =  platform (collidable)
//	~  decoration             ^  spikes (hazard object)
//	@  player start           E  enemy patrolling the numbered nodes
//	1-9  patrol nodes, visited in numeric order
//
// Any other character is empty space. Lines starting with ';' are comments.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: mapconv <sketch.txt> <output.yaml> [tile_size]")
		os.Exit(1)
	}

	tile := 16.0
	if len(os.Args) > 3 {
		v, err := strconv.ParseFloat(os.Args[3], 64)
		if err != nil || v <= 0 {
			fmt.Fprintf(os.Stderr, "bad tile size %q\n", os.Args[3])
			os.Exit(1)
		}
		tile = v
	}

	inFile, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer inFile.Close()

	var lines []string
	scanner := bufio.NewScanner(inFile)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m, err := convert(lines, tile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := os.Create(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "# Map generated by mapconv from %s (%dx%d tiles, %d objects)\n",
		os.Args[1], m.Width, m.Height, len(m.Objects))
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %dx%d map with %d objects to %s\n", m.Width, m.Height, len(m.Objects), os.Args[2])
}
