package wal

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// Command is the decoded payload of an entry record: everything needed
// to re-execute one engine mutation during replay.
type Command struct {
	OrderID uint64
	Side    uint32
	Type    uint32
	Price   int64
	Qty     int64
}

var ErrCorruptCommand = errors.New("wal: corrupt command payload")

// Field numbers for the wire encoding. Price is zigzag-encoded since
// ticks are signed.
const (
	fieldOrderID = 1
	fieldSide    = 2
	fieldType    = 3
	fieldPrice   = 4
	fieldQty     = 5
)

func EncodeCommand(c Command) []byte {
	buf := make([]byte, 0, 32)
	buf = protowire.AppendTag(buf, fieldOrderID, protowire.VarintType)
	buf = protowire.AppendVarint(buf, c.OrderID)
	buf = protowire.AppendTag(buf, fieldSide, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(c.Side))
	buf = protowire.AppendTag(buf, fieldType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(c.Type))
	buf = protowire.AppendTag(buf, fieldPrice, protowire.VarintType)
	buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(c.Price))
	buf = protowire.AppendTag(buf, fieldQty, protowire.VarintType)
	buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(c.Qty))
	return buf
}

func DecodeCommand(b []byte) (Command, error) {
	var c Command
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return c, ErrCorruptCommand
		}
		b = b[n:]
		if typ != protowire.VarintType {
			return c, ErrCorruptCommand
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return c, ErrCorruptCommand
		}
		b = b[n:]

		switch num {
		case fieldOrderID:
			c.OrderID = v
		case fieldSide:
			c.Side = uint32(v)
		case fieldType:
			c.Type = uint32(v)
		case fieldPrice:
			c.Price = protowire.DecodeZigZag(v)
		case fieldQty:
			c.Qty = protowire.DecodeZigZag(v)
		}
	}
	return c, nil
}
