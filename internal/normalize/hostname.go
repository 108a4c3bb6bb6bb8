package normalize

import (
	"context"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/loglens/loglens/internal/record"
)

// DefaultHostnameCacheSize caps HostnameStep's resolved-name cache.
const DefaultHostnameCacheSize = 1000

// DefaultHostnameTimeout bounds a single reverse lookup.
const DefaultHostnameTimeout = 500 * time.Millisecond

type hostnameCacheEntry struct {
	host    string
	expires time.Time
}

// HostnameStep resolves Network.SrcIP/DstIP to a hostname via reverse DNS
// (PTR) and stores it in Extra, caching results so that a burst of records
// from the same source does not issue one lookup per line. Once the cache
// is full, the half with the soonest expiry is evicted in one pass, which
// keeps lookups capped at the configured size under steady churn.
type HostnameStep struct {
	Server    string
	Timeout   time.Duration
	CacheSize int
	TTL       time.Duration
	exchange  func(ctx context.Context, addr string) (string, error)

	mu    sync.Mutex
	cache map[string]hostnameCacheEntry
}

// NewHostnameStep builds a HostnameStep querying server (e.g. "8.8.8.8:53")
// for PTR records.
func NewHostnameStep(server string) *HostnameStep {
	s := &HostnameStep{
		Server:    server,
		Timeout:   DefaultHostnameTimeout,
		CacheSize: DefaultHostnameCacheSize,
		TTL:       5 * time.Minute,
		cache:     make(map[string]hostnameCacheEntry),
	}
	s.exchange = s.lookupPTR
	return s
}

func (s *HostnameStep) Normalize(r record.Record) (record.Record, error) {
	if r.Network == nil {
		return r, nil
	}
	if host, ok := s.resolve(r.Network.SrcIP); ok {
		r.Extra["src_hostname"] = host
	}
	if host, ok := s.resolve(r.Network.DstIP); ok {
		r.Extra["dst_hostname"] = host
	}
	return r, nil
}

func (s *HostnameStep) resolve(ip string) (string, bool) {
	if ip == "" || net.ParseIP(ip) == nil {
		return "", false
	}
	if host, ok := s.cacheGet(ip); ok {
		return host, host != ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	host, err := s.exchange(ctx, ip)
	if err != nil {
		s.cachePut(ip, "")
		return "", false
	}
	s.cachePut(ip, host)
	return host, host != ""
}

func (s *HostnameStep) lookupPTR(ctx context.Context, addr string) (string, error) {
	rev, err := dns.ReverseAddr(addr)
	if err != nil {
		return "", err
	}
	m := new(dns.Msg)
	m.SetQuestion(rev, dns.TypePTR)
	m.RecursionDesired = true

	client := new(dns.Client)
	client.Timeout = s.Timeout
	in, _, err := client.ExchangeContext(ctx, m, s.Server)
	if err != nil {
		return "", err
	}
	for _, ans := range in.Answer {
		if ptr, ok := ans.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, "."), nil
		}
	}
	return "", nil
}

func (s *HostnameStep) cacheGet(ip string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[ip]
	if !ok || time.Now().After(entry.expires) {
		return "", false
	}
	return entry.host, true
}

func (s *HostnameStep) cachePut(ip, host string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= s.CacheSize {
		s.evictHalf()
	}
	s.cache[ip] = hostnameCacheEntry{host: host, expires: time.Now().Add(s.TTL)}
}

// evictHalf drops the half of the cache with the soonest expiry, called
// with mu already held.
func (s *HostnameStep) evictHalf() {
	type keyed struct {
		ip      string
		expires time.Time
	}
	entries := make([]keyed, 0, len(s.cache))
	for ip, e := range s.cache {
		entries = append(entries, keyed{ip, e.expires})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].expires.Before(entries[j].expires)
	})
	half := len(entries) / 2
	for i := 0; i < half; i++ {
		delete(s.cache, entries[i].ip)
	}
}
