package id

import (
	"crypto/md5"
	"io"
	"strconv"

	fuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return GenUUIDString()
}

// TraceIDFrom new traceID from text
func TraceIDFrom(text string) string {
	return UUIDFromString(text)
}

// GenUUIDString new uuid
func GenUUIDString() string {
	return uuid.Must(uuid.NewV4()).String()
}

// IsUUID reports whether s parses as an uuid
func IsUUID(s string) bool {
	_, e := uuid.FromString(s)
	return e == nil
}

// SubTraceID derives the n-th child trace of an operation trace,
// stable across retries
func SubTraceID(traceID string, n int) string {
	if !IsUUID(traceID) {
		traceID = UUIDFromString(traceID)
	}

	return fuuid.Modify(traceID, "transfer:"+strconv.Itoa(n))
}

// UUIDFromString  new uuid string from string
func UUIDFromString(text string) string {
	h := md5.New()
	io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}
