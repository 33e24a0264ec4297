package integrations

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"packtrack-service/config"
)

func TestRedisLockerKey(t *testing.T) {
	l := NewRedisLocker(nil, " ")
	if got := l.key(" sync:user-1 "); got != "packtrack:lock:sync:user-1" {
		t.Fatalf("key = %s", got)
	}
}

func TestRedisLockerReportsUnreachableServer(t *testing.T) {
	client := NewRedisClient(config.RedisConfig{Host: "127.0.0.1", Port: 1})
	defer client.Close()
	l := NewRedisLocker(client, "test")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, ok, err := l.TryLock(ctx, "sync:user-1", time.Second); err == nil || ok {
		t.Fatalf("expected error from unreachable redis, got ok=%v err=%v", ok, err)
	}
}

// Runs against a real server when PACKTRACK_TEST_REDIS_PORT is set.
func TestRedisLockerExcludesSecondHolder(t *testing.T) {
	portEnv := os.Getenv("PACKTRACK_TEST_REDIS_PORT")
	if portEnv == "" {
		t.Skip("PACKTRACK_TEST_REDIS_PORT not set")
	}
	port, err := strconv.Atoi(portEnv)
	if err != nil {
		t.Fatalf("invalid port %q", portEnv)
	}

	client := NewRedisClient(config.RedisConfig{Host: "127.0.0.1", Port: port})
	defer client.Close()
	l := NewRedisLocker(client, "packtrack-test-"+strconv.FormatInt(time.Now().UnixNano(), 10))
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "sync:user-1", 5*time.Second)
	if err != nil || !ok {
		t.Fatalf("first lock failed: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := l.TryLock(ctx, "sync:user-1", 5*time.Second); ok {
		t.Fatalf("second holder should be rejected")
	}
	unlock()
	if unlock2, ok, err := l.TryLock(ctx, "sync:user-1", 5*time.Second); err != nil || !ok {
		t.Fatalf("lock after release failed: ok=%v err=%v", ok, err)
	} else {
		unlock2()
	}
}
