package dimen

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp (%d), is %d", 12*BP, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	d, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	}
	//
	d, _, err = ParseDimen("32pc")
	if err != nil {
		t.Errorf("(4) %s", err.Error())
	} else if d != 32*PC {
		t.Errorf("(4) expected d to be 32pc (%d), is %d", 32*PC, d)
	}
	//
	_, _, err = ParseDimen("12 furlongs")
	if !errors.Is(err, core.ErrInvalidDimension) {
		t.Errorf("(5) expected invalid dimension error, got %v", err)
	}
}

func TestWholePicas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmetrics.core")
	defer teardown()
	//
	n, err := (32 * PC).WholePicas()
	if err != nil || n != 32 {
		t.Errorf("expected 32 picas, got %d (%v)", n, err)
	}
	if _, err = (32*PC + PT).WholePicas(); core.Code(err) != core.EINVALID {
		t.Errorf("expected 32pc+1pt to be rejected, got %v", err)
	}
	if _, err = Zero.WholePicas(); err == nil {
		t.Errorf("expected zero width to be rejected")
	}
	if p := (12 * PT).PrintersPoints(); p != 12.0 {
		t.Errorf("expected 12pt, got %g", p)
	}
}
