package cryptotax

import "testing"

func TestCorrelate_NoWithdrawal(t *testing.T) {
	l := NewLedger(
		buy("2023-01-01", "BTC", 1, 10000),
		sell("2023-06-01", "BTC", 1, 15000, 0),
	)
	ds, err := Match(l)
	if err != nil {
		t.Fatal(err)
	}
	w := Correlate(l, ds)
	if len(w.Disposals) != 0 || w.Count != 0 || !w.Amount.IsZero() {
		t.Errorf("Correlate() = %+v, want empty", w)
	}
	if !w.Gain().IsZero() {
		t.Errorf("Gain() = %s, want 0", w.Gain().Decimal())
	}
}

func TestCorrelate_CutoffOnLatestWithdrawal(t *testing.T) {
	l := NewLedger(
		buy("2023-01-01", "BTC", 2, 20000),
		sell("2023-03-01", "BTC", 0.5, 6000, 0),
		withdraw("2023-03-15", 3000),
		sell("2023-06-01", "BTC", 0.5, 7000, 0),
		withdraw("2023-06-01", 2000),
		sell("2023-09-01", "BTC", 0.5, 8000, 0),
	)
	ds, err := Match(l)
	if err != nil {
		t.Fatal(err)
	}
	w := Correlate(l, ds)
	if w.Count != 2 {
		t.Errorf("Count = %d, want 2", w.Count)
	}
	assertMoney(t, "Amount", w.Amount, 5000)
	if w.Cutoff.String() != "2023-06-01" {
		t.Errorf("Cutoff = %s, want 2023-06-01", w.Cutoff)
	}
	// the disposal on the cutoff day is included, the later one is not.
	if len(w.Disposals) != 2 {
		t.Fatalf("Disposals = %v, want 2", w.Disposals)
	}
	assertMoney(t, "Gain", w.Gain(), 1000+2000)
}

func TestCorrelate_IgnoresOtherOutflows(t *testing.T) {
	crypto := withdraw("2023-12-01", 1)
	crypto.OutgoingAsset = "BTC"
	taxable := withdraw("2023-12-02", 100)
	taxable.Category = Withdrawal
	l := NewLedger(
		buy("2023-01-01", "BTC", 2, 20000),
		sell("2023-03-01", "BTC", 1, 12000, 0),
		crypto,
		taxable,
	)
	ds, err := Match(l)
	if err != nil {
		t.Fatal(err)
	}
	if w := Correlate(l, ds); w.Count != 0 || len(w.Disposals) != 0 {
		t.Errorf("Correlate() = %+v, want no withdrawal", w)
	}
}
