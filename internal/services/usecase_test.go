package services

import (
	"testing"

	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/testutil"
	"github.com/ssaandco/aicatalog/internal/types"
)

func intPtr(v int) *int { return &v }

func TestCompositeScore(t *testing.T) {
	if got := CompositeScore(nil, intPtr(3), intPtr(5)); got != nil {
		t.Fatalf("expected nil composite with missing axis, got %v", *got)
	}

	got := CompositeScore(intPtr(3), intPtr(4), intPtr(5))
	if got == nil {
		t.Fatal("expected composite score, got nil")
	}
	if *got != 4.0 {
		t.Fatalf("expected composite 4.0, got %v", *got)
	}

	got = CompositeScore(intPtr(1), intPtr(1), intPtr(2))
	if got == nil || *got < 1.33 || *got > 1.34 {
		t.Fatalf("expected composite near 1.333, got %v", got)
	}
}

func TestCreateUseCaseDefaults(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)

	useCase, err := CreateUseCase(CreateUseCaseInput{
		Name:        "Contract triage",
		Description: "Classify inbound contracts",
	}, submitter.ID)
	if err != nil {
		t.Fatalf("CreateUseCase failed: %v", err)
	}

	if useCase.Status != types.StatusNew {
		t.Errorf("expected status NEW, got %s", useCase.Status)
	}
	if useCase.ApprovalStatus != types.ApprovalPendingReview {
		t.Errorf("expected approval PENDING_REVIEW, got %s", useCase.ApprovalStatus)
	}
	if useCase.VisibilityScope != types.VisibilityGeneral {
		t.Errorf("expected visibility GENERAL, got %s", useCase.VisibilityScope)
	}
	if useCase.CompositeScore != nil {
		t.Errorf("expected nil composite on creation, got %v", *useCase.CompositeScore)
	}
	if useCase.SubmitterID != submitter.ID {
		t.Errorf("expected submitter %d, got %d", submitter.ID, useCase.SubmitterID)
	}
	if useCase.DateSubmitted.IsZero() {
		t.Error("expected dateSubmitted to be set")
	}
}

func TestCreateUseCaseWithAssociations(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	toolA := testutil.CreateTool(t, "Claude")
	toolB := testutil.CreateTool(t, "Copilot")
	group := testutil.CreateGroup(t, "Data Science", "data-science")

	useCase, err := CreateUseCase(CreateUseCaseInput{
		Name:            "Report drafting",
		Description:     "Draft weekly reports",
		VisibilityScope: types.VisibilityGroup,
		ToolIDs:         []uint{toolA.ID, toolB.ID},
		GroupIDs:        []uint{group.ID},
	}, submitter.ID)
	if err != nil {
		t.Fatalf("CreateUseCase failed: %v", err)
	}

	if len(useCase.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(useCase.Tools))
	}
	if len(useCase.Groups) != 1 || useCase.Groups[0].Slug != "data-science" {
		t.Fatalf("expected group data-science, got %+v", useCase.Groups)
	}
}

func TestCreateUseCaseUnknownToolFails(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)

	_, err := CreateUseCase(CreateUseCaseInput{
		Name:        "Broken",
		Description: "References a tool that does not exist",
		ToolIDs:     []uint{9999},
	}, submitter.ID)
	if err == nil {
		t.Fatal("expected error for unknown tool id")
	}
	if kind := apperr.KindOf(err); kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got kind %d: %v", kind, err)
	}
}

func TestUpdateUseCasePermissions(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	other := testutil.CreateUser(t, "other@example.com", types.RoleSubmitter)
	committee := testutil.CreateUser(t, "rev@example.com", types.RoleCommittee)

	useCase := testutil.CreateUseCase(t, submitter.ID, "Editable", types.VisibilityGeneral)

	newName := "Renamed"

	_, err := UpdateUseCase(useCase.ID, UpdateUseCaseInput{Name: &newName}, other.ID, other.Role)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden for unrelated submitter, got %v", err)
	}

	updated, err := UpdateUseCase(useCase.ID, UpdateUseCaseInput{Name: &newName}, submitter.ID, submitter.Role)
	if err != nil {
		t.Fatalf("submitter edit failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected name Renamed, got %s", updated.Name)
	}

	status := types.StatusInProgress
	updated, err = UpdateUseCase(useCase.ID, UpdateUseCaseInput{Status: &status}, committee.ID, committee.Role)
	if err != nil {
		t.Fatalf("committee edit failed: %v", err)
	}
	if updated.Status != types.StatusInProgress {
		t.Fatalf("expected status IN_PROGRESS, got %s", updated.Status)
	}
}

func TestUpdateUseCaseToolReplace(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	toolA := testutil.CreateTool(t, "Claude")
	toolB := testutil.CreateTool(t, "Gemini")

	useCase, err := CreateUseCase(CreateUseCaseInput{
		Name:        "Tooling",
		Description: "d",
		ToolIDs:     []uint{toolA.ID},
	}, submitter.ID)
	if err != nil {
		t.Fatalf("CreateUseCase failed: %v", err)
	}

	// Absent toolIds leaves associations untouched.
	newName := "Tooling v2"
	updated, err := UpdateUseCase(useCase.ID, UpdateUseCaseInput{Name: &newName}, submitter.ID, submitter.Role)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Tools) != 1 || updated.Tools[0].ID != toolA.ID {
		t.Fatalf("expected tool set untouched, got %+v", updated.Tools)
	}

	// Present toolIds replaces the whole set.
	replacement := []uint{toolB.ID}
	updated, err = UpdateUseCase(useCase.ID, UpdateUseCaseInput{ToolIDs: &replacement}, submitter.ID, submitter.Role)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Tools) != 1 || updated.Tools[0].ID != toolB.ID {
		t.Fatalf("expected tool set replaced with %d, got %+v", toolB.ID, updated.Tools)
	}

	// Empty array clears every association.
	empty := []uint{}
	updated, err = UpdateUseCase(useCase.ID, UpdateUseCaseInput{ToolIDs: &empty}, submitter.ID, submitter.Role)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Tools) != 0 {
		t.Fatalf("expected empty tool set, got %+v", updated.Tools)
	}
}

func TestScoreUseCase(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	committee := testutil.CreateUser(t, "rev@example.com", types.RoleCommittee)

	useCase := testutil.CreateUseCase(t, submitter.ID, "Scored", types.VisibilityGeneral)

	// Submitters cannot score, even their own submissions.
	_, err := ScoreUseCase(useCase.ID, ScoreUseCaseInput{BusinessImpact: intPtr(5)}, submitter.Role)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden for submitter, got %v", err)
	}

	// Partial scoring leaves the composite unset.
	scored, err := ScoreUseCase(useCase.ID, ScoreUseCaseInput{BusinessImpact: intPtr(5)}, committee.Role)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scored.CompositeScore != nil {
		t.Fatalf("expected nil composite with one axis, got %v", *scored.CompositeScore)
	}

	// Filling the remaining axes merges with the stored value.
	scored, err = ScoreUseCase(useCase.ID, ScoreUseCaseInput{
		Feasibility:        intPtr(4),
		StrategicAlignment: intPtr(3),
	}, committee.Role)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scored.CompositeScore == nil || *scored.CompositeScore != 4.0 {
		t.Fatalf("expected composite 4.0, got %v", scored.CompositeScore)
	}
	if scored.BusinessImpact == nil || *scored.BusinessImpact != 5 {
		t.Fatalf("expected businessImpact 5 preserved, got %v", scored.BusinessImpact)
	}
}

func TestScoreUseCaseOwnerAssignment(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	committee := testutil.CreateUser(t, "rev@example.com", types.RoleCommittee)

	useCase := testutil.CreateUseCase(t, submitter.ID, "Owned", types.VisibilityGeneral)

	scored, err := ScoreUseCase(useCase.ID, ScoreUseCaseInput{
		OwnerID: types.OptionalUint{Present: true, Value: &committee.ID},
	}, committee.Role)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scored.OwnerID == nil || *scored.OwnerID != committee.ID {
		t.Fatalf("expected owner %d, got %v", committee.ID, scored.OwnerID)
	}

	// ownerId: null clears the assignment.
	scored, err = ScoreUseCase(useCase.ID, ScoreUseCaseInput{
		OwnerID: types.OptionalUint{Present: true, Value: nil},
	}, committee.Role)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scored.OwnerID != nil {
		t.Fatalf("expected owner cleared, got %v", *scored.OwnerID)
	}

	// Absent ownerId leaves the assignment alone.
	assigned, err := ScoreUseCase(useCase.ID, ScoreUseCaseInput{
		OwnerID: types.OptionalUint{Present: true, Value: &committee.ID},
	}, committee.Role)
	if err != nil || assigned.OwnerID == nil {
		t.Fatalf("re-assign failed: %v", err)
	}
	scored, err = ScoreUseCase(useCase.ID, ScoreUseCaseInput{Notes: strPtr("note only")}, committee.Role)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if scored.OwnerID == nil || *scored.OwnerID != committee.ID {
		t.Fatalf("expected owner untouched, got %v", scored.OwnerID)
	}
}

func strPtr(s string) *string { return &s }

func TestFindAllUseCasesVisibility(t *testing.T) {
	testutil.SetupTestDB(t)

	alice := testutil.CreateUser(t, "alice@example.com", types.RoleSubmitter)
	bob := testutil.CreateUser(t, "bob@example.com", types.RoleSubmitter)
	admin := testutil.CreateUser(t, "admin@example.com", types.RoleAdmin)
	group := testutil.CreateGroup(t, "Platform", "platform")
	testutil.AddMember(t, bob.ID, group.ID)

	testutil.CreateUseCase(t, alice.ID, "alice-private", types.VisibilityPrivate)
	testutil.CreateUseCase(t, alice.ID, "alice-general", types.VisibilityGeneral)
	grouped := testutil.CreateUseCase(t, alice.ID, "alice-grouped", types.VisibilityGroup)
	testutil.CreateUseCase(t, bob.ID, "bob-private", types.VisibilityPrivate)

	if _, err := UpdateUseCase(grouped.ID, UpdateUseCaseInput{
		GroupIDs: &[]uint{group.ID},
	}, alice.ID, alice.Role); err != nil {
		t.Fatalf("attach group failed: %v", err)
	}

	names := func(authCtx *types.AuthContext) map[string]bool {
		t.Helper()
		rows, _, err := FindAllUseCases(&UseCaseQuery{Page: 1, Limit: 50}, authCtx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		out := map[string]bool{}
		for _, row := range rows {
			out[row.Name] = true
		}
		return out
	}

	// Alice sees her own three plus nothing of Bob's.
	got := names(testutil.AuthFor(alice))
	if len(got) != 3 || !got["alice-private"] || got["bob-private"] {
		t.Fatalf("alice visibility wrong: %v", got)
	}

	// Bob sees his private one, the general one, and the group-scoped one
	// through his membership.
	got = names(testutil.AuthFor(bob, group.ID))
	if len(got) != 3 || !got["alice-grouped"] || !got["alice-general"] || !got["bob-private"] {
		t.Fatalf("bob visibility wrong: %v", got)
	}

	// Without the membership the group-scoped row disappears.
	got = names(testutil.AuthFor(bob))
	if got["alice-grouped"] {
		t.Fatalf("bob should not see group-scoped row without membership: %v", got)
	}

	// Admins see everything.
	got = names(testutil.AuthFor(admin))
	if len(got) != 4 {
		t.Fatalf("admin should see all 4, got %v", got)
	}
}

func TestFindAllUseCasesFiltersAndSearch(t *testing.T) {
	testutil.SetupTestDB(t)

	admin := testutil.CreateUser(t, "admin@example.com", types.RoleAdmin)

	testutil.CreateUseCase(t, admin.ID, "Invoice OCR", types.VisibilityGeneral)
	other := testutil.CreateUseCase(t, admin.ID, "Chatbot pilot", types.VisibilityGeneral)

	status := types.StatusCompleted
	if _, err := UpdateUseCase(other.ID, UpdateUseCaseInput{Status: &status}, admin.ID, admin.Role); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rows, total, err := FindAllUseCases(&UseCaseQuery{Page: 1, Limit: 10, Search: "invoice"}, testutil.AuthFor(admin))
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Name != "Invoice OCR" {
		t.Fatalf("expected single invoice match, got total=%d rows=%v", total, rows)
	}

	rows, total, err = FindAllUseCases(&UseCaseQuery{Page: 1, Limit: 10, Status: types.StatusCompleted}, testutil.AuthFor(admin))
	if err != nil {
		t.Fatalf("status filter failed: %v", err)
	}
	if total != 1 || rows[0].Name != "Chatbot pilot" {
		t.Fatalf("expected chatbot match, got total=%d", total)
	}
}

func TestFindAllUseCasesPagination(t *testing.T) {
	testutil.SetupTestDB(t)

	admin := testutil.CreateUser(t, "admin@example.com", types.RoleAdmin)

	for i := 0; i < 25; i++ {
		testutil.CreateUseCase(t, admin.ID, "case", types.VisibilityGeneral)
	}

	rows, total, err := FindAllUseCases(&UseCaseQuery{Page: 1, Limit: 10}, testutil.AuthFor(admin))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 25 || len(rows) != 10 {
		t.Fatalf("expected total 25 page of 10, got total=%d len=%d", total, len(rows))
	}

	rows, _, err = FindAllUseCases(&UseCaseQuery{Page: 3, Limit: 10}, testutil.AuthFor(admin))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected last page of 5, got %d", len(rows))
	}

	// Out-of-range page values normalize instead of erroring.
	rows, _, err = FindAllUseCases(&UseCaseQuery{Page: 0, Limit: 0}, testutil.AuthFor(admin))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("expected default limit 10, got %d", len(rows))
	}
}

func TestCanViewUseCase(t *testing.T) {
	testutil.SetupTestDB(t)

	alice := testutil.CreateUser(t, "alice@example.com", types.RoleSubmitter)
	bob := testutil.CreateUser(t, "bob@example.com", types.RoleSubmitter)
	admin := testutil.CreateUser(t, "admin@example.com", types.RoleAdmin)
	group := testutil.CreateGroup(t, "Platform", "platform")

	private := testutil.CreateUseCase(t, alice.ID, "private", types.VisibilityPrivate)
	grouped := testutil.CreateUseCase(t, alice.ID, "grouped", types.VisibilityGroup)

	if _, err := UpdateUseCase(grouped.ID, UpdateUseCaseInput{
		GroupIDs: &[]uint{group.ID},
	}, alice.ID, alice.Role); err != nil {
		t.Fatalf("attach group failed: %v", err)
	}
	loaded, err := FindUseCaseByID(grouped.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if !CanViewUseCase(private, testutil.AuthFor(alice)) {
		t.Error("submitter should see own private row")
	}
	if CanViewUseCase(private, testutil.AuthFor(bob)) {
		t.Error("private row leaked to another submitter")
	}
	if !CanViewUseCase(private, testutil.AuthFor(admin)) {
		t.Error("admin should see private row")
	}
	if !CanViewUseCase(loaded, testutil.AuthFor(bob, group.ID)) {
		t.Error("group member should see group-scoped row")
	}
	if CanViewUseCase(loaded, testutil.AuthFor(bob)) {
		t.Error("non-member saw group-scoped row")
	}
	if CanViewUseCase(private, nil) {
		t.Error("nil context should never see anything")
	}
}

func TestDeleteUseCase(t *testing.T) {
	testutil.SetupTestDB(t)

	admin := testutil.CreateUser(t, "admin@example.com", types.RoleAdmin)
	tool := testutil.CreateTool(t, "Claude")

	useCase, err := CreateUseCase(CreateUseCaseInput{
		Name:        "Doomed",
		Description: "d",
		ToolIDs:     []uint{tool.ID},
	}, admin.ID)
	if err != nil {
		t.Fatalf("CreateUseCase failed: %v", err)
	}

	if err := DeleteUseCase(useCase.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := FindUseCaseByID(useCase.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	if err := DeleteUseCase(useCase.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for second delete, got %v", err)
	}

	// The tool survives its joins.
	if _, err := FindToolByID(tool.ID); err != nil {
		t.Fatalf("tool should survive use case deletion: %v", err)
	}
}
