package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestRedisCache runs against a live server when JSONSCOPE_TEST_REDIS is set
// to its address.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("JSONSCOPE_TEST_REDIS")
	if addr == "" {
		t.Skip("JSONSCOPE_TEST_REDIS not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "jsonscope-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Minute); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Clear() = %d, %v; want 3", n, err)
	}
}

func TestRedisClearRequiresPrefix(t *testing.T) {
	c := NewRedisCacheFromClient(nil, "")
	if _, err := c.Clear(context.Background()); err == nil {
		t.Error("Clear without prefix should fail")
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	if IsRetryable(classify(context.DeadlineExceeded)) == false {
		t.Error("deadline errors should be retryable")
	}
	if IsRetryable(classify(ErrCacheMiss)) {
		t.Error("plain errors should not be retryable")
	}
}
