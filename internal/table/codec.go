package table

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// On-disk layout, little endian:
//
//	magic "WOTB" | version u16 | word length u8 | guesses u32 | secrets u32
//	guess words | secret words | cells (row-major) | crc32 of all preceding bytes
const (
	magic   = "WOTB"
	version = 1
	// maxWords and maxCells bound the header counts so a corrupt file cannot
	// make Read allocate gigabytes.
	maxWords = 1 << 20
	maxCells = 1 << 28
)

// ErrCorruptTable is returned by Read for files that fail validation.
var ErrCorruptTable = errors.New("table: corrupt artifact")

type header struct {
	Magic   [4]byte
	Version uint16
	WordLen uint8
	Guesses uint32
	Secrets uint32
}

// Write serialises t. Identical tables always produce identical bytes.
func Write(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	crc := crc32.NewIEEE()
	mw := io.MultiWriter(bw, crc)

	h := header{Version: version, WordLen: game.WordLen,
		Guesses: uint32(len(t.guesses)), Secrets: uint32(len(t.secrets))}
	copy(h.Magic[:], magic)
	if err := binary.Write(mw, binary.LittleEndian, h); err != nil {
		return err
	}
	for _, list := range [][]string{t.guesses, t.secrets} {
		for _, word := range list {
			if _, err := io.WriteString(mw, word); err != nil {
				return err
			}
		}
	}
	buf := make([]byte, len(t.cells))
	for i, c := range t.cells {
		buf[i] = byte(c)
	}
	if _, err := mw.Write(buf); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, crc.Sum32()); err != nil {
		return err
	}
	return bw.Flush()
}

// Read parses a table written by Write.
func Read(r io.Reader) (*Table, error) {
	crc := crc32.NewIEEE()
	tr := io.TeeReader(bufio.NewReader(r), crc)

	var h header
	if err := binary.Read(tr, binary.LittleEndian, &h); err != nil {
		return nil, corrupt("header", err)
	}
	switch {
	case string(h.Magic[:]) != magic:
		return nil, corrupt("bad magic", nil)
	case h.Version != version:
		return nil, corrupt(fmt.Sprintf("unsupported version %d", h.Version), nil)
	case h.WordLen != game.WordLen:
		return nil, corrupt(fmt.Sprintf("word length %d", h.WordLen), nil)
	case h.Guesses > maxWords || h.Secrets > maxWords:
		return nil, corrupt("word count out of range", nil)
	case uint64(h.Guesses)*uint64(h.Secrets) > maxCells:
		return nil, corrupt("table too large", nil)
	}

	guesses, err := readWords(tr, int(h.Guesses))
	if err != nil {
		return nil, err
	}
	secrets, err := readWords(tr, int(h.Secrets))
	if err != nil {
		return nil, err
	}

	// grows with the bytes actually present, so a truncated file fails
	// before the full claimed size is allocated
	n := int64(h.Guesses) * int64(h.Secrets)
	buf, err := io.ReadAll(io.LimitReader(tr, n))
	if err != nil {
		return nil, corrupt("cells", err)
	}
	if int64(len(buf)) != n {
		return nil, corrupt("cells", io.ErrUnexpectedEOF)
	}
	cells := make([]game.Code, len(buf))
	for i, b := range buf {
		c := game.Code(b)
		if !c.Valid() {
			return nil, corrupt(fmt.Sprintf("cell %d holds %d", i, b), nil)
		}
		cells[i] = c
	}

	want := crc.Sum32()
	var got uint32
	if err := binary.Read(tr, binary.LittleEndian, &got); err != nil {
		return nil, corrupt("checksum", err)
	}
	if got != want {
		return nil, corrupt("checksum mismatch", nil)
	}
	return newTable(guesses, secrets, cells), nil
}

func readWords(r io.Reader, n int) ([]string, error) {
	buf := make([]byte, n*game.WordLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, corrupt("words", err)
	}
	out := make([]string, n)
	for i := range out {
		w := string(buf[i*game.WordLen : (i+1)*game.WordLen])
		if err := game.ValidateWord(w); err != nil {
			return nil, corrupt(err.Error(), nil)
		}
		out[i] = w
	}
	return out, nil
}

func corrupt(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptTable, what, err)
	}
	return fmt.Errorf("%w: %s", ErrCorruptTable, what)
}

// Save writes t to path atomically (temp file + rename).
func Save(path string, t *Table) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := Write(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Open reads the table stored at path.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return t, nil
}
