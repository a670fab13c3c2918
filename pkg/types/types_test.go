package types

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestU256(t *testing.T) {
	u := U256{Int: big.NewInt(100)}
	raw, err := u.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(raw) != `"100"` {
		t.Errorf("expected \"100\", got %s", string(raw))
	}

	var u2 U256
	err = u2.UnmarshalJSON([]byte(`"200"`))
	if err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if u2.Int.Int64() != 200 {
		t.Errorf("expected 200, got %d", u2.Int.Int64())
	}
}

func TestDecimal(t *testing.T) {
	var d Decimal
	if err := d.UnmarshalJSON([]byte(`"1.2345"`)); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if !d.Dec().Equal(decimal.RequireFromString("1.2345")) {
		t.Errorf("unexpected decimal: %s", d)
	}

	raw, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(raw) != `"1.2345"` {
		t.Errorf("expected \"1.2345\", got %s", string(raw))
	}

	if err := d.UnmarshalJSON([]byte(`0.5`)); err != nil {
		t.Fatalf("bare decimal rejected: %v", err)
	}
	if !d.Dec().Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("unexpected decimal: %s", d)
	}
}

func TestAddress(t *testing.T) {
	addrStr := "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	var a Address
	err := a.UnmarshalJSON([]byte(`"` + addrStr + `"`))
	if err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if a.Hex() != addrStr {
		t.Errorf("expected %s, got %s", addrStr, a.Hex())
	}

	if err := a.UnmarshalJSON([]byte(`"not-an-address"`)); err == nil {
		t.Errorf("expected error for malformed address")
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Status: 400, Code: "VALIDATION_FAILED", Message: "bad order"}
	if e.Error() != "relayer error 400 (VALIDATION_FAILED): bad order" {
		t.Errorf("unexpected error string: %s", e.Error())
	}
}
