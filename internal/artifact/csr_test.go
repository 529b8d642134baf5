// Copyright (c) 2025 The wikigraph-go authors
// SPDX-License-Identifier: MIT

package artifact

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func sampleCSR() *CSR {
	return &CSR{
		N:       4,
		IndPtr:  []int32{0, 2, 2, 3, 3},
		Indices: []int32{1, 2, 3},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleCSR()
	if err := Encode(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode(Encode(x)) = %+v, want %+v", got, want)
	}
}

func TestDecodeZstdFramed(t *testing.T) {
	var plain bytes.Buffer
	if err := Encode(&plain, sampleCSR()); err != nil {
		t.Fatal(err)
	}

	var compressed bytes.Buffer
	zw, err := zstd.NewWriter(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write(plain.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, sampleCSR()) {
		t.Fatalf("Decode(zstd(Encode(x))) = %+v, want %+v", got, sampleCSR())
	}
}

func TestDecodeBadMagic(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("nope"))); err == nil {
		t.Fatal("expected an error for a bad magic header")
	}
}
