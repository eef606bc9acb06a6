package dxf

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Tag is one DXF group-code pair: an integer code line followed by a
// value line.
type Tag struct {
	Code  int
	Value string
}

// AsFloat parses the tag value as a float, returning 0 on failure.
func (t Tag) AsFloat() float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return v
}

// AsInt parses the tag value as an integer, returning 0 on failure.
func (t Tag) AsInt() int {
	v, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return v
}

// scanTags reads the code/value line pairs of a DXF stream in order.
// A code line that is not an integer, or a dangling code with no value
// line, is malformed input.
func scanTags(text string) ([]Tag, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var tags []Tag
	line := 0
	for sc.Scan() {
		line++
		codeStr := strings.TrimSpace(sc.Text())
		if codeStr == "" && len(tags) == 0 {
			continue // leading blank lines
		}
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: group code %q is not an integer", line, codeStr)
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("line %d: group code %d has no value line", line, code)
		}
		line++
		// Values keep their spaces (MTEXT chunks may end in one); only
		// a stray carriage return is stripped.
		tags = append(tags, Tag{Code: code, Value: strings.TrimRight(sc.Text(), "\r")})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
