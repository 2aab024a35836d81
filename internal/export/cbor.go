package export

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/born-ml/nbt/internal/convert"
	"github.com/born-ml/nbt/internal/nbt"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys and smallest integer encoding, so one tree always yields the same
// bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBOR renders t as CBOR. Byte arrays become byte strings and compounds
// become maps keyed by entry name.
func CBOR(t nbt.Tag) ([]byte, error) {
	return encMode.Marshal(convert.Natural(t))
}
