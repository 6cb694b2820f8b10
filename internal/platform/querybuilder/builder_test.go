package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("external_id", "game_state").
		From("games").
		Where(Eq("game_date", "2025-09-21"), IsNull("deleted_at")).
		OrderBy("start_time_utc", "external_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT external_id, game_state FROM games WHERE game_date = $1 AND deleted_at IS NULL ORDER BY start_time_utc, external_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "2025-09-21" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRangeAndExpr(t *testing.T) {
	query, args, err := Select("id").
		From("fetch_attempts").
		Where(
			Gte("fetched_at", "2025-09-21T00:00:00Z"),
			Lte("fetched_at", "2025-09-22T00:00:00Z"),
			Expr("(home_team_id = ? OR away_team_id = ?)", 10, 10),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM fetch_attempts WHERE fetched_at >= $1 AND fetched_at <= $2 AND (home_team_id = $3 OR away_team_id = $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != 10 || args[3] != 10 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderGroupBy(t *testing.T) {
	query, _, err := Select("game_state", "COUNT(*) AS total").
		From("games").
		Where(IsNull("deleted_at")).
		GroupBy("game_state").
		OrderBy("game_state").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_state, COUNT(*) AS total FROM games WHERE deleted_at IS NULL GROUP BY game_state ORDER BY game_state"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("venues").
		Columns("name_key", "name").
		Values("td-garden", "TD Garden").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO venues (name_key, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "td-garden" || args[1] != "TD Garden" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	model := struct {
		ExternalID int64  `db:"external_id"`
		Name       string `db:"name"`
		Ignored    string `db:"-"`
		NoTag      string
	}{ExternalID: 22, Name: "Utah Mammoth", Ignored: "x", NoTag: "y"}

	query, args, err := InsertModel("teams", model, "ON CONFLICT (external_id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO teams (external_id, name) VALUES ($1, $2) ON CONFLICT (external_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(22) || args[1] != "Utah Mammoth" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("games").
		Set("game_state", "FINAL").
		SetExpr("updated_at", "NOW()").
		Where(Eq("external_id", int64(2025010007))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE games SET game_state = $1, updated_at = NOW() WHERE external_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "FINAL" || args[1] != int64(2025010007) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("broadcasts").
		Where(Eq("game_external_id", int64(2025010007))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM broadcasts WHERE game_external_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(2025010007) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilderRequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("broadcasts").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without conditions")
	}
}
