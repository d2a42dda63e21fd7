package dto_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

func TestToReadinessResponse_FailingOutranksDegraded(t *testing.T) {
	t.Parallel()

	// Map order is random; run enough times that both orders are seen.
	for range 20 {
		resp, ready := dto.ToReadinessResponse(map[string]error{
			"article-feed": fmt.Errorf("%w: breaker open", ports.ErrDegraded),
			"store:sqlite": errors.New("disk full"),
		})
		if ready {
			t.Fatal("ready = true with a failing store")
		}
		if resp.Status != dto.HealthNotReady {
			t.Fatalf("Status = %q, want %q", resp.Status, dto.HealthNotReady)
		}
	}
}

func TestToReadinessResponse_ErrorText(t *testing.T) {
	t.Parallel()

	resp, _ := dto.ToReadinessResponse(map[string]error{"executor": errors.New("executor closed")})
	if got := resp.Checks["executor"]; got.Status != dto.HealthFailing || got.Error != "executor closed" {
		t.Errorf("executor check = %+v", got)
	}
}
