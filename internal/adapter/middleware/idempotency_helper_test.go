package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

var testKey = buildKey("POST", "/loans", strings.Repeat("b", 32), strings.Repeat("a", 32))

func Test_bodyHash(t *testing.T) {
	data := []byte(`{"borrower_id":"x"}`)
	sum := sha256.Sum256(data)
	if got, want := bodyHash(data), hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("bodyHash = %s, want %s", got, want)
	}
	if bodyHash(nil) != bodyHash([]byte{}) {
		t.Fatal("nil and empty bodies should hash alike")
	}
}

func Test_buildKey(t *testing.T) {
	want := "idemp:ax:post:/loans:" + strings.Repeat("b", 32) + ":" + strings.Repeat("a", 32)
	if testKey != want {
		t.Fatalf("buildKey = %q, want %q", testKey, want)
	}
}

func Test_validReqID(t *testing.T) {
	for _, s := range []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"3f9a6a1b-3d54-1fbe-9b3a-6b3e8d6b2c88",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
	} {
		if !validReqID(s) {
			t.Errorf("validReqID(%q) = false, want true", s)
		}
	}
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88",
		"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88", // version 9
		"3f9a6a1b-3d54-4fbe-cb3a-6b3e8d6b2c88", // non-RFC variant
		"{3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c8}",
	} {
		if validReqID(s) {
			t.Errorf("validReqID(%q) = true, want false", s)
		}
	}
}

func Test_parseAxRequestAt(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		raw  string
		want time.Time
	}{
		{strconv.FormatInt(now.Unix(), 10), time.Unix(now.Unix(), 0).UTC()},
		{strconv.FormatInt(now.UnixMilli(), 10), time.UnixMilli(now.UnixMilli()).UTC()},
		{"2025-09-05T10:00:00+07:00", time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)},
		{"2025-09-05T03:00:00Z", time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)},
		{"2025-09-05T03:00:00.250Z", time.Date(2025, 9, 5, 3, 0, 0, 250_000_000, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseAxRequestAt(tt.raw)
		if err != nil {
			t.Fatalf("parseAxRequestAt(%q): %v", tt.raw, err)
		}
		if !got.Equal(tt.want) || got.Location() != time.UTC {
			t.Fatalf("parseAxRequestAt(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	for _, raw := range []string{"", "not-a-time", "2025-09-05T10:00:00", "1736123456abc"} {
		if _, err := parseAxRequestAt(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func Test_provisionalSet_IsExclusive(t *testing.T) {
	_, rdb := newMiniRedis(t)
	ctx := context.Background()
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash([]byte(`{}`)), RequestID: strings.Repeat("a", 32)}

	ok, err := provisionalSet(ctx, rdb, testKey, entry)
	if err != nil || !ok {
		t.Fatalf("first provisionalSet: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(ctx, testKey).Val(); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("lock ttl = %v", ttl)
	}
	ok, err = provisionalSet(ctx, rdb, testKey, entry)
	if err != nil || ok {
		t.Fatalf("second provisionalSet: ok=%v err=%v", ok, err)
	}

	got, err := loadEntry(ctx, rdb, testKey)
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if !got.InProgress || got.BodySHA256 != entry.BodySHA256 {
		t.Fatalf("loaded entry mismatch: %+v", got)
	}
}

func Test_saveFinal_ThenRelease(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	ctx := context.Background()
	final := idempEntry{Code: 201, ContentType: "application/json", Body: []byte(`{"ok":true}`)}

	if err := saveFinal(ctx, rdb, testKey, final, 5*time.Second); err != nil {
		t.Fatalf("saveFinal: %v", err)
	}
	if ttl := mr.TTL(testKey); ttl <= 0 || ttl > 5*time.Second {
		t.Fatalf("final ttl = %v", ttl)
	}
	got, err := loadEntry(ctx, rdb, testKey)
	if err != nil || got.Code != 201 || string(got.Body) != `{"ok":true}` {
		t.Fatalf("loadEntry = %+v, %v", got, err)
	}

	if err := release(ctx, rdb, testKey); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists(testKey) {
		t.Fatal("key should be gone after release")
	}
}

func Test_loadEntry_Corrupt(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	if err := mr.Set(testKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadEntry(context.Background(), rdb, testKey); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := loadEntry(context.Background(), rdb, "missing"); err != redis.Nil {
		t.Fatalf("missing key err = %v, want redis.Nil", err)
	}
}
