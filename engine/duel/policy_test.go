package duel

import (
	"testing"

	"github.com/mirren/spellbound/engine/rng"
)

func fullView(spells []string) View {
	return View{
		Health: 100, MaxHealth: 100,
		Energy: 100, MaxEnergy: 100,
		Spells: spells,
	}
}

func TestPolicyFor_Unknown(t *testing.T) {
	if _, err := PolicyFor("berserk", testRegistry(t)); err == nil {
		t.Error("expected error for unknown policy name")
	}
}

func TestRandomPolicy_OnlyPayable(t *testing.T) {
	p, err := PolicyFor("random", testRegistry(t))
	if err != nil {
		t.Fatalf("PolicyFor: %v", err)
	}
	r := rng.New(42)

	self := fullView([]string{"Surebolt", "Costly"})
	self.Energy = 10 // can pay Surebolt (5) but not Costly (50)

	for i := 0; i < 50; i++ {
		name, ok := p.ChooseSpell(self, fullView(nil), r)
		if !ok {
			t.Fatal("policy forfeited with a payable spell available")
		}
		if name != "Surebolt" {
			t.Fatalf("picked unpayable spell %q", name)
		}
	}
}

func TestRandomPolicy_ForfeitsWhenBroke(t *testing.T) {
	p, _ := PolicyFor("random", testRegistry(t))
	r := rng.New(42)

	self := fullView([]string{"Costly"})
	self.Energy = 0

	if _, ok := p.ChooseSpell(self, fullView(nil), r); ok {
		t.Error("expected forfeit with no payable spell")
	}
}

func TestAggressivePolicy_PrefersStrongestOffensive(t *testing.T) {
	p, _ := PolicyFor("aggressive", testRegistry(t))
	r := rng.New(42)

	self := fullView([]string{"Surebolt", "Crusher", "Ward"})
	name, ok := p.ChooseSpell(self, fullView(nil), r)
	if !ok || name != "Crusher" {
		t.Errorf("picked %q, want Crusher (power 100)", name)
	}
}

func TestAggressivePolicy_FallsBackWhenNoOffensive(t *testing.T) {
	p, _ := PolicyFor("aggressive", testRegistry(t))
	r := rng.New(42)

	self := fullView([]string{"Ward", "Renew"})
	name, ok := p.ChooseSpell(self, fullView(nil), r)
	if !ok {
		t.Fatal("expected a fallback pick")
	}
	if name != "Ward" && name != "Renew" {
		t.Errorf("picked %q, want one of the payable non-offensive spells", name)
	}
}

func TestCunningPolicy_WardsWhenHurt(t *testing.T) {
	p, _ := PolicyFor("cunning", testRegistry(t))
	r := rng.New(42)

	self := fullView([]string{"Surebolt", "Ward"})
	self.Health = 30 // below half

	name, ok := p.ChooseSpell(self, fullView(nil), r)
	if !ok || name != "Ward" {
		t.Errorf("picked %q, want Ward when hurt and unwarded", name)
	}

	// Already warded: attack instead.
	self.Warded = true
	name, _ = p.ChooseSpell(self, fullView(nil), r)
	if name != "Surebolt" {
		t.Errorf("picked %q, want Surebolt when already warded", name)
	}
}

func TestCunningPolicy_RecoversWhenDrained(t *testing.T) {
	p, _ := PolicyFor("cunning", testRegistry(t))
	r := rng.New(42)

	self := fullView([]string{"Surebolt", "Renew"})
	self.Energy = 20 // below a third

	name, ok := p.ChooseSpell(self, fullView(nil), r)
	if !ok || name != "Renew" {
		t.Errorf("picked %q, want Renew when drained", name)
	}
}

func TestCunningPolicy_AttacksByDefault(t *testing.T) {
	p, _ := PolicyFor("cunning", testRegistry(t))
	r := rng.New(42)

	self := fullView([]string{"Surebolt", "Ward", "Renew"})
	name, ok := p.ChooseSpell(self, fullView(nil), r)
	if !ok || name != "Surebolt" {
		t.Errorf("picked %q, want Surebolt at full strength", name)
	}
}
