// Package binkind classifies binary artifacts from their leading magic
// bytes: ELF executables and shared objects, static archives, zip-based
// archives, and interpreter scripts that slipped past extension checks.
package binkind

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// OnInspectBinKind is the handler for the 'binkind' inspector.
func OnInspectBinKind(ctx context.Context, it *item.Item) (cty.Value, error) {
	f, err := os.Open(it.Path())
	if err != nil {
		return cty.NilVal, err
	}
	defer f.Close()

	head := make([]byte, 20)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return cty.NilVal, err
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, elfMagic):
		return cty.StringVal(elfKind(head)), nil
	case bytes.HasPrefix(head, []byte("!<arch>\n")):
		return cty.StringVal("ARCHIVE"), nil
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		return cty.StringVal("ARCHIVE"), nil
	case bytes.HasPrefix(head, []byte("#!")):
		return cty.StringVal("SCRIPT"), nil
	default:
		return cty.StringVal("UNKNOWN"), nil
	}
}

// elfKind reads the e_type field of an ELF header. Offset 16, two
// bytes, endianness per the EI_DATA byte at offset 5.
func elfKind(head []byte) string {
	if len(head) < 18 {
		return "UNKNOWN"
	}
	var order binary.ByteOrder = binary.LittleEndian
	if head[5] == 2 {
		order = binary.BigEndian
	}
	switch order.Uint16(head[16:18]) {
	case 2:
		return "EXECUTABLE"
	case 3:
		// ET_DYN covers both shared libraries and PIE executables;
		// without the program headers we cannot tell them apart.
		return "SHARED_OBJECT"
	default:
		return "UNKNOWN"
	}
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectBinKind", &registry.RegisteredInspector{
		Fn: OnInspectBinKind,
	})
}

var _ inspector.DecorateFunc = OnInspectBinKind
