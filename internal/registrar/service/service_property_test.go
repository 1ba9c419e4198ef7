package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pgregory.net/rapid"

	"inu/internal/registrar/models"
	registrarStore "inu/internal/registrar/store/registrar"
	subdomainStore "inu/internal/registrar/store/subdomain"
	id "inu/pkg/domain"
	"inu/pkg/platform/tx"
)

// TestHolderIndexMatchesOwnership runs random subdomain operations and checks
// that the holder index marks exactly the non-administrator owners, each of
// whom holds a single name.
func TestHolderIndexMatchesOwnership(t *testing.T) {
	accounts := []id.AccountID{admin, alice, bob, "carol"}
	names := []string{"a", "b", "c", "d"}

	rapid.Check(t, func(r *rapid.T) {
		ctx := context.Background()
		dir := NewDirectory(registrarStore.NewInMemory(), subdomainStore.NewInMemory(), nil, tx.NewInMemory(),
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		if err := dir.Provision(ctx, "elon", admin); err != nil {
			r.Fatalf("provision: %v", err)
		}
		reg, err := dir.Open(ctx, "elon")
		if err != nil {
			r.Fatalf("open: %v", err)
		}

		steps := rapid.IntRange(1, 50).Draw(r, "steps")
		for i := 0; i < steps; i++ {
			name := rapid.SampledFrom(names).Draw(r, "name")
			caller := rapid.SampledFrom(accounts).Draw(r, "caller")
			before, _ := reg.Subdomain(ctx, name)

			var opErr error
			switch rapid.IntRange(0, 3).Draw(r, "op") {
			case 0:
				opErr = reg.CreateSubdomain(ctx, name, caller)
			case 1:
				target := rapid.SampledFrom(accounts).Draw(r, "target")
				opErr = reg.TransferSubdomain(ctx, name, target, caller)
			case 2:
				opErr = reg.DeleteSubdomain(ctx, name, caller)
			case 3:
				opErr = reg.ChangeSubdomainData(ctx, name, models.Profile{Description: "x"}, caller)
			}
			if opErr != nil {
				after, _ := reg.Subdomain(ctx, name)
				if before != after {
					r.Fatalf("failed operation changed %q", name)
				}
			}
			checkHolderIndex(r, reg, accounts)
		}
	})
}

func checkHolderIndex(r *rapid.T, reg *Registrar, accounts []id.AccountID) {
	ctx := context.Background()
	all, err := reg.AllSubdomains(ctx)
	if err != nil {
		r.Fatalf("list: %v", err)
	}
	heldBy := map[id.AccountID]int{}
	for _, name := range all {
		view, err := reg.Subdomain(ctx, name)
		if err != nil {
			r.Fatalf("subdomain %q: %v", name, err)
		}
		if view.Active != (view.Owner != admin) {
			r.Fatalf("%q active flag disagrees with owner %q", name, view.Owner)
		}
		if view.Active {
			heldBy[view.Owner]++
		}
	}
	for _, account := range accounts {
		holds, err := reg.HasSubdomain(ctx, account)
		if err != nil {
			r.Fatalf("has subdomain: %v", err)
		}
		if holds != (heldBy[account] == 1) {
			r.Fatalf("holder index for %q is %v but it owns %d active names", account, holds, heldBy[account])
		}
		if heldBy[account] > 1 {
			r.Fatalf("%q owns %d active names", account, heldBy[account])
		}
	}
	if holds, _ := reg.HasSubdomain(ctx, admin); holds {
		r.Fatalf("administrator marked as holder")
	}
}
