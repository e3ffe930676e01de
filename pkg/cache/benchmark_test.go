package cache

import (
	"fmt"
	"testing"
)

func BenchmarkCacheGet(b *testing.B) {
	c := New(Options{MaxEntries: 10000})
	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key%d", i), sampleFile("bench.java"))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key999")
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := New(Options{MaxEntries: 10000})
	f := sampleFile("bench.java")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key%d", i), f)
	}
}

func BenchmarkKey(b *testing.B) {
	src := make([]byte, 64<<10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Key("java", src)
	}
}
