package dataset

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

// maxPrealloc bounds the capacity allocated from an untrusted header.
const maxPrealloc = 1 << 20

// Read parses a dataset from r, decompressing it first if needed.
func Read(r io.Reader) ([][]float32, error) {
	plain, closeFn, _, err := Decompress(r)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return parse(plain)
}

func parse(r io.Reader) ([][]float32, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	token := 0
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", ErrTruncated
		}
		token++
		return sc.Text(), nil
	}

	dim := func() (int, error) {
		s, err := next()
		if err != nil {
			return 0, err
		}
		v, perr := strconv.Atoi(s)
		if perr != nil {
			return 0, &FormatError{Token: token - 1, Value: s, Reason: "expected a count", cause: perr}
		}
		if v < 0 {
			return 0, &FormatError{Token: token - 1, Value: s, Reason: "count must not be negative"}
		}
		return v, nil
	}

	m, err := dim()
	if err != nil {
		return nil, err
	}
	n, err := dim()
	if err != nil {
		return nil, err
	}
	if m > 0 && n == 0 {
		return nil, &FormatError{Token: 1, Value: "0", Reason: "dimension must be positive"}
	}

	vecs := make([][]float32, 0, min(m, maxPrealloc))
	for i := 0; i < m; i++ {
		row := make([]float32, 0, min(n, maxPrealloc))
		for j := 0; j < n; j++ {
			s, err := next()
			if err != nil {
				return nil, err
			}
			v, perr := strconv.ParseFloat(s, 32)
			if perr != nil {
				return nil, &FormatError{Token: token - 1, Value: s, Reason: "expected a number", cause: perr}
			}
			row = append(row, float32(v))
		}
		vecs = append(vecs, row)
	}

	return vecs, nil
}

// Write writes vecs in plain text, one row per line.
// All rows must have the same, non-zero length.
func Write(w io.Writer, vecs [][]float32) error {
	n := 0
	if len(vecs) > 0 {
		n = len(vecs[0])
	}
	for _, v := range vecs {
		if len(v) != n {
			return ErrRagged
		}
	}
	if len(vecs) > 0 && n == 0 {
		return ErrZeroDimension
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)

	buf = strconv.AppendInt(buf[:0], int64(len(vecs)), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for _, v := range vecs {
		for j, x := range v {
			buf = buf[:0]
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, float64(x), 'g', -1, 32)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Encode renders vecs in the text format wrapped in the given compression.
func Encode(vecs [][]float32, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, vecs); err != nil {
		return nil, err
	}
	return compress(buf.Bytes(), c)
}
