package service

import (
	"unsafe"

	"proberegistry/domain"
)

const (
	mapEntryOverhead = 48 // bucket slot, hash and key header per map entry
	scalarSize       = 8
)

// approxStoreSize estimates the memory held by the records: struct headers, string bytes and
// decoded meta values. It is a gauge for operators, not an exact accounting.
func approxStoreSize(records map[string]domain.ProbeRecord) int {
	size := int(unsafe.Sizeof(records))
	for id, record := range records {
		size += mapEntryOverhead + len(id)
		size += int(unsafe.Sizeof(record))
		size += len(record.ID) + len(record.Address) + len(record.Group)
		size += approxValueSize(record.Meta)
	}
	return size
}

func approxValueSize(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case string:
		return len(val)
	case map[string]any:
		size := 0
		for k, item := range val {
			size += mapEntryOverhead + len(k) + approxValueSize(item)
		}
		return size
	case []any:
		size := int(unsafe.Sizeof(val))
		for _, item := range val {
			size += int(unsafe.Sizeof(item)) + approxValueSize(item)
		}
		return size
	default:
		return scalarSize
	}
}
