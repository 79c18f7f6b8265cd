package services

import (
	"testing"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/testutil"
	"github.com/ssaandco/aicatalog/internal/types"
)

func TestFindAllUsersCountsAndFilters(t *testing.T) {
	testutil.SetupTestDB(t)

	alice := testutil.CreateUser(t, "alice@example.com", types.RoleSubmitter)
	reviewer := testutil.CreateUser(t, "rev@example.com", types.RoleCommittee)

	useCase := testutil.CreateUseCase(t, alice.ID, "case-1", types.VisibilityGeneral)
	testutil.CreateUseCase(t, alice.ID, "case-2", types.VisibilityGeneral)

	if _, err := ScoreUseCase(useCase.ID, ScoreUseCaseInput{
		OwnerID: types.OptionalUint{Present: true, Value: &reviewer.ID},
	}, reviewer.Role); err != nil {
		t.Fatalf("assign owner failed: %v", err)
	}

	users, total, err := FindAllUsers(&UserQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("FindAllUsers failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 users, got %d", total)
	}

	byEmail := map[string]types.UserDetail{}
	for _, u := range users {
		byEmail[u.Email] = u
	}

	if got := byEmail["alice@example.com"].Counts.SubmittedUseCases; got != 2 {
		t.Errorf("expected alice submitted count 2, got %d", got)
	}
	if got := byEmail["rev@example.com"].Counts.OwnedUseCases; got != 1 {
		t.Errorf("expected reviewer owned count 1, got %d", got)
	}

	users, total, err = FindAllUsers(&UserQuery{Page: 1, Limit: 10, Role: types.RoleCommittee})
	if err != nil {
		t.Fatalf("role filter failed: %v", err)
	}
	if total != 1 || users[0].Email != "rev@example.com" {
		t.Fatalf("expected committee filter match, got total=%d", total)
	}

	users, total, err = FindAllUsers(&UserQuery{Page: 1, Limit: 10, Search: "ALICE"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || users[0].Email != "alice@example.com" {
		t.Fatalf("expected search match, got total=%d", total)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	testutil.SetupTestDB(t)

	alice := testutil.CreateUser(t, "alice@example.com", types.RoleSubmitter)
	testutil.CreateUser(t, "bob@example.com", types.RoleSubmitter)

	taken := "Bob@Example.com"
	_, err := UpdateUser(alice.ID, UpdateUserInput{Email: &taken})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for taken email, got %v", err)
	}

	fresh := "Alice.New@Example.com"
	updated, err := UpdateUser(alice.ID, UpdateUserInput{Email: &fresh})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Email != "alice.new@example.com" {
		t.Fatalf("expected lowercased email, got %s", updated.Email)
	}

	role := types.RoleCommittee
	updated, err = UpdateUser(alice.ID, UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("role update failed: %v", err)
	}
	if updated.Role != types.RoleCommittee {
		t.Fatalf("expected role COMMITTEE, got %s", updated.Role)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	testutil.SetupTestDB(t)

	alice := testutil.CreateUser(t, "alice@example.com", types.RoleSubmitter)
	reviewer := testutil.CreateUser(t, "rev@example.com", types.RoleCommittee)
	group := testutil.CreateGroup(t, "Platform", "platform")
	testutil.AddMember(t, alice.ID, group.ID)

	submitted := testutil.CreateUseCase(t, alice.ID, "alice-case", types.VisibilityGeneral)
	reviewed := testutil.CreateUseCase(t, reviewer.ID, "reviewer-case", types.VisibilityGeneral)

	// Make alice the assigned owner of the reviewer's case; the cascade
	// only cares about the foreign key, not roles.
	err := db.DB.Model(&models.UseCase{}).Where("id = ?", reviewed.ID).
		Update("owner_id", alice.ID).Error
	if err != nil {
		t.Fatalf("assign owner failed: %v", err)
	}

	if err := DeleteUser(alice.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := FindUseCaseByID(submitted.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected submitted use case deleted, got %v", err)
	}

	refreshed, err := FindUseCaseByID(reviewed.ID)
	if err != nil {
		t.Fatalf("reviewed use case should survive: %v", err)
	}
	if refreshed.OwnerID != nil {
		t.Fatalf("expected owner cleared, got %v", *refreshed.OwnerID)
	}

	if _, err := FindUserByID(alice.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected user gone, got %v", err)
	}

	// A deleted email can be registered again.
	recreated := testutil.CreateUser(t, "alice@example.com", types.RoleSubmitter)
	if recreated.ID == alice.ID {
		t.Fatal("expected a fresh user row")
	}
}

func TestFindOwnerCandidates(t *testing.T) {
	testutil.SetupTestDB(t)

	testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	testutil.CreateUser(t, "rev@example.com", types.RoleCommittee)
	testutil.CreateUser(t, "admin@example.com", types.RoleAdmin)

	candidates, err := FindOwnerCandidates()
	if err != nil {
		t.Fatalf("FindOwnerCandidates failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Role == types.RoleSubmitter {
			t.Fatalf("submitter leaked into candidates: %+v", c)
		}
	}
}
