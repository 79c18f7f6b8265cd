package services

import (
	"testing"

	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/testutil"
	"github.com/ssaandco/aicatalog/internal/types"
)

func TestCreateAndUpdateTool(t *testing.T) {
	testutil.SetupTestDB(t)

	desc := "Code assistant"
	tool, err := CreateTool(CreateToolInput{Name: "Copilot", Description: &desc})
	if err != nil {
		t.Fatalf("CreateTool failed: %v", err)
	}
	if tool.ID == 0 || tool.Name != "Copilot" {
		t.Fatalf("unexpected tool: %+v", tool)
	}

	newName := "GitHub Copilot"
	updated, err := UpdateTool(tool.ID, UpdateToolInput{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateTool failed: %v", err)
	}
	if updated.Name != "GitHub Copilot" {
		t.Fatalf("expected renamed tool, got %s", updated.Name)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Fatalf("expected description preserved, got %v", updated.Description)
	}

	if _, err := UpdateTool(9999, UpdateToolInput{Name: &newName}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown tool, got %v", err)
	}
}

func TestFindAllToolsSearchAndOrder(t *testing.T) {
	testutil.SetupTestDB(t)

	for _, name := range []string{"Zapier", "Claude", "Midjourney"} {
		testutil.CreateTool(t, name)
	}

	tools, total, err := FindAllTools(&ToolQuery{Page: 1, Limit: 50})
	if err != nil {
		t.Fatalf("FindAllTools failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 tools, got %d", total)
	}
	if tools[0].Name != "Claude" || tools[2].Name != "Zapier" {
		t.Fatalf("expected alphabetical order, got %+v", tools)
	}

	tools, total, err = FindAllTools(&ToolQuery{Page: 1, Limit: 50, Search: "CLAUDE"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || tools[0].Name != "Claude" {
		t.Fatalf("expected case-insensitive match, got total=%d %+v", total, tools)
	}
}

func TestDeleteToolDetachesUseCases(t *testing.T) {
	testutil.SetupTestDB(t)

	submitter := testutil.CreateUser(t, "sub@example.com", types.RoleSubmitter)
	tool := testutil.CreateTool(t, "Claude")

	useCase, err := CreateUseCase(CreateUseCaseInput{
		Name:        "Summaries",
		Description: "d",
		ToolIDs:     []uint{tool.ID},
	}, submitter.ID)
	if err != nil {
		t.Fatalf("CreateUseCase failed: %v", err)
	}

	if err := DeleteTool(tool.ID); err != nil {
		t.Fatalf("DeleteTool failed: %v", err)
	}

	refreshed, err := FindUseCaseByID(useCase.ID)
	if err != nil {
		t.Fatalf("use case should survive tool deletion: %v", err)
	}
	if len(refreshed.Tools) != 0 {
		t.Fatalf("expected tool association removed, got %+v", refreshed.Tools)
	}

	if err := DeleteTool(tool.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for second delete, got %v", err)
	}
}
