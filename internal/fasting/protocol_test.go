package fasting

import "testing"

// TestProtocolHours 方案 -> 小时数的固定映射
func TestProtocolHours(t *testing.T) {
	want := map[string]int{
		"12:12": 12,
		"14:10": 14,
		"16:8":  16,
		"18:6":  18,
		"20:4":  20,
	}

	for name, hours := range want {
		got, ok := ProtocolHours(name)
		if !ok {
			t.Errorf("ProtocolHours(%q) ok = false, want true", name)
			continue
		}
		if got != hours {
			t.Errorf("ProtocolHours(%q) = %d, want %d", name, got, hours)
		}
	}
}

// TestProtocolHours_Unknown 封闭集合之外的方案一律拒绝
func TestProtocolHours_Unknown(t *testing.T) {
	testCases := []string{"", "16:08", "24:0", "omad", "16-8"}

	for _, name := range testCases {
		if _, ok := ProtocolHours(name); ok {
			t.Errorf("ProtocolHours(%q) ok = true, want false", name)
		}
		if ValidProtocol(name) {
			t.Errorf("ValidProtocol(%q) = true, want false", name)
		}
	}
}

// TestProtocols_CatalogMatchesMapping 目录和映射保持一致
func TestProtocols_CatalogMatchesMapping(t *testing.T) {
	if len(Protocols) != len(protocolHours) {
		t.Fatalf("catalog size = %d, want %d", len(Protocols), len(protocolHours))
	}
	for _, p := range Protocols {
		hours, ok := ProtocolHours(p.Name)
		if !ok {
			t.Errorf("catalog protocol %q missing from mapping", p.Name)
			continue
		}
		if p.Duration != hours {
			t.Errorf("catalog %q duration = %d, mapping says %d", p.Name, p.Duration, hours)
		}
	}
}
