package league

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    League
		wantErr bool
	}{
		{"champions", Champions, false},
		{"Europa", Europa, false},
		{"conference_league", Conference, false},
		{"UCOL", Conference, false},
		{" cl ", Champions, false},
		{"premier", League{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	all, err := Select("all")
	if err != nil {
		t.Fatalf("Select(all) error: %v", err)
	}
	if len(all) != 3 || all[0] != Champions || all[1] != Conference || all[2] != Europa {
		t.Errorf("Select(all) = %v, want Champions, Conference, Europa", all)
	}

	one, err := Select("europa")
	if err != nil {
		t.Fatalf("Select(europa) error: %v", err)
	}
	if len(one) != 1 || one[0] != Europa {
		t.Errorf("Select(europa) = %v, want [Europa]", one)
	}

	if _, err := Select("bundesliga"); err == nil {
		t.Error("Select(bundesliga) expected error, got nil")
	}
}

func TestLeague_Dir(t *testing.T) {
	if got := Champions.Dir(); got != "champions_league" {
		t.Errorf("Dir() = %q, want champions_league", got)
	}
}

func TestSeason_Formats(t *testing.T) {
	s := Season(2023)
	if got := s.ID(); got != "2023" {
		t.Errorf("ID() = %q, want 2023", got)
	}
	if got := s.Label(); got != "2023_2024" {
		t.Errorf("Label() = %q, want 2023_2024", got)
	}
	if got := s.String(); got != "2023-2024" {
		t.Errorf("String() = %q, want 2023-2024", got)
	}
}

func TestParseSeason(t *testing.T) {
	tests := []struct {
		in      string
		want    Season
		wantErr bool
	}{
		{"2021", 2021, false},
		{"2022_2023", 2022, false},
		{"2024-2025", 2024, false},
		{"2020", 0, true},
		{"gesamt", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeason(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeason(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeason(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelectSeasons(t *testing.T) {
	all, err := SelectSeasons("")
	if err != nil || len(all) != 4 {
		t.Fatalf("SelectSeasons(\"\") = %v, %v; want 4 seasons", all, err)
	}
	one, err := SelectSeasons("2022")
	if err != nil || len(one) != 1 || one[0] != 2022 {
		t.Errorf("SelectSeasons(2022) = %v, %v; want [2022]", one, err)
	}
}
