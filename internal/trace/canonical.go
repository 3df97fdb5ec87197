package trace

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Canonical JSON encoding for traces and snapshots.
//
// This is the ONLY serialization used for trace hashing, golden file
// comparison, and store payloads. Properties:
//
//  1. Object keys appear in a fixed order (ascending by key)
//  2. No insignificant whitespace
//  3. No HTML escaping (narrations contain "<=" and must round-trip as-is)
//  4. Strings are NFC normalized
//  5. No floats anywhere (values are int64 by construction)
//
// The encoding is plain JSON, so standard json.Unmarshal reads it back.

// MarshalCanonical encodes a trace as canonical JSON.
func MarshalCanonical(t *Trace) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"snapshots":[`)
	for i, snap := range t.snapshots {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalSnapshotCanonical(snap)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// MarshalSnapshotCanonical encodes a single snapshot as canonical JSON.
func MarshalSnapshotCanonical(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"comparing_indices":[`)
	for i, idx := range s.ComparingIndices {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(idx))
	}
	buf.WriteString(`],"elements":[`)
	for i, el := range s.Elements {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"state":`)
		if err := appendCanonicalString(&buf, string(el.State)); err != nil {
			return nil, fmt.Errorf("element %d state: %w", i, err)
		}
		buf.WriteString(`,"value":`)
		buf.WriteString(strconv.FormatInt(el.Value, 10))
		buf.WriteByte('}')
	}
	buf.WriteString(`],"narration":`)
	if err := appendCanonicalString(&buf, s.Narration); err != nil {
		return nil, fmt.Errorf("narration: %w", err)
	}
	buf.WriteString(`,"partition_narration":`)
	if err := appendCanonicalString(&buf, s.PartitionNarration); err != nil {
		return nil, fmt.Errorf("partition narration: %w", err)
	}
	buf.WriteString(`,"pivot_index":`)
	buf.WriteString(strconv.Itoa(s.PivotIndex))
	buf.WriteString(`,"step_pointer":`)
	buf.WriteString(strconv.Itoa(s.StepPointer))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Hash returns the hex-encoded sha256 of the canonical trace encoding.
// Two traces hash equal iff their canonical encodings are byte-identical,
// which is the determinism property the engine guarantees per input.
func Hash(t *Trace) (string, error) {
	b, err := MarshalCanonical(t)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// appendCanonicalString writes an NFC-normalized, JSON-escaped string
// without HTML escaping.
func appendCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return err
	}
	// Encoder appends a trailing newline.
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
