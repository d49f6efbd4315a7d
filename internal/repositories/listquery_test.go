package repositories

import (
	"strings"
	"testing"
)

var testSpec = ListSpec{
	Table:         "empleados",
	Columns:       "id, nombre, apellido",
	SearchColumns: []string{"nombre", "apellido"},
	OrderingFields: map[string]string{
		"id":       "id",
		"apellido": "apellido",
		"salario":  "salario_base",
	},
	FilterFields: map[string]string{
		"activo": "activo",
	},
	DefaultOrdering: "apellido",
}

func TestBuildSelectDefaults(t *testing.T) {
	query, args := testSpec.BuildSelect(ListParams{})

	if !strings.Contains(query, "ORDER BY apellido") {
		t.Fatalf("default ordering missing: %s", query)
	}
	if !strings.HasSuffix(query, "LIMIT ? OFFSET ?") {
		t.Fatalf("paging clause missing: %s", query)
	}
	if len(args) != 2 || args[0] != DefaultPageSize || args[1] != 0 {
		t.Fatalf("unexpected paging args: %v", args)
	}
}

func TestBuildSelectPageOffset(t *testing.T) {
	_, args := testSpec.BuildSelect(ListParams{Page: 3, PageSize: 10})
	if args[len(args)-2] != 10 || args[len(args)-1] != 20 {
		t.Fatalf("page 3 with size 10 should offset 20, got %v", args)
	}

	// page < 1 clamps to the first page
	_, args = testSpec.BuildSelect(ListParams{Page: -5})
	if args[len(args)-1] != 0 {
		t.Fatalf("negative page should clamp to offset 0, got %v", args)
	}
}

func TestBuildSelectSearch(t *testing.T) {
	query, args := testSpec.BuildSelect(ListParams{Search: "gomez"})

	if !strings.Contains(query, "(nombre LIKE ? OR apellido LIKE ?)") {
		t.Fatalf("search clause missing: %s", query)
	}
	if args[0] != "%gomez%" || args[1] != "%gomez%" {
		t.Fatalf("search args wrong: %v", args)
	}
}

func TestBuildSelectOrderingMultiKeyDesc(t *testing.T) {
	query, _ := testSpec.BuildSelect(ListParams{Ordering: "-salario,apellido"})
	if !strings.Contains(query, "ORDER BY salario_base DESC, apellido") {
		t.Fatalf("multi-key ordering wrong: %s", query)
	}
}

func TestBuildSelectUnknownOrderingFallsBack(t *testing.T) {
	query, _ := testSpec.BuildSelect(ListParams{Ordering: "password_hash"})
	if !strings.Contains(query, "ORDER BY apellido") {
		t.Fatalf("unknown ordering key should fall back to default: %s", query)
	}
	if strings.Contains(query, "password_hash") {
		t.Fatalf("non whitelisted column leaked into query: %s", query)
	}
}

func TestBuildSelectFilters(t *testing.T) {
	query, args := testSpec.BuildSelect(ListParams{Filters: map[string]string{
		"activo":      "true",
		"desconocido": "1",
	}})

	if !strings.Contains(query, "activo = ?") {
		t.Fatalf("filter clause missing: %s", query)
	}
	if strings.Contains(query, "desconocido") {
		t.Fatalf("unknown filter leaked into query: %s", query)
	}
	if args[0] != 1 {
		t.Fatalf("boolean filter not normalized: %v", args)
	}
}

func TestBuildSelectBaseWhere(t *testing.T) {
	spec := testSpec
	spec.BaseWhere = []string{"empleado_id = ?"}
	spec.BaseArgs = []any{int64(7)}

	query, args := spec.BuildSelect(ListParams{Search: "ana"})
	if !strings.Contains(query, "WHERE empleado_id = ? AND (") {
		t.Fatalf("base where should come first: %s", query)
	}
	if args[0] != int64(7) {
		t.Fatalf("base args should come first: %v", args)
	}
}

func TestBuildCountIgnoresPaging(t *testing.T) {
	query, args := testSpec.BuildCount(ListParams{Page: 4, PageSize: 10, Search: "x"})
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "ORDER BY") {
		t.Fatalf("count query should not page or order: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("count args should only carry the search: %v", args)
	}
}
