package models

import (
	"strings"
	"testing"
	"time"
)

func TestShowValidate(t *testing.T) {
	show := &Show{Title: "Breaking Bad", Status: StatusEnded}
	if err := show.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	show.Title = ""
	if err := show.Validate(); err == nil {
		t.Fatalf("expected error for missing title")
	}

	show.Title = strings.Repeat("x", MaxTitleLen+1)
	if err := show.Validate(); err == nil {
		t.Fatalf("expected error for oversized title")
	}

	bad := 10.5
	show.Title = "Ok"
	show.Rating = &bad
	if err := show.Validate(); err == nil {
		t.Fatalf("expected error for rating out of range")
	}
}

func TestEpisodeValidate(t *testing.T) {
	season, number := 1, 3
	ep := &Episode{ShowID: 1, SeasonNumber: &season, EpisodeNumber: &number}
	if err := ep.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zero := 0
	ep.SeasonNumber = &zero
	if err := ep.Validate(); err == nil {
		t.Fatalf("expected error for non-positive season")
	}

	ep.SeasonNumber = &season
	ep.ShowID = 0
	if err := ep.Validate(); err == nil {
		t.Fatalf("expected error for orphan episode")
	}
}

func TestDistributorValidate(t *testing.T) {
	d := &Distributor{Name: "AMC", Active: true}
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badURL := "ftp://amc.com"
	d.WebsiteURL = &badURL
	if err := d.Validate(); err == nil {
		t.Fatalf("expected error for non-http URL")
	}

	goodURL := "https://www.amc.com"
	badCC := "USA"
	d.WebsiteURL = &goodURL
	d.CountryCode = &badCC
	if err := d.Validate(); err == nil {
		t.Fatalf("expected error for three-letter country code")
	}
}

func TestShowDistributionContractDates(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	sd := &ShowDistribution{ShowID: 1, DistributorID: 1, Region: RegionGlobal, ContractStartDate: &start, ContractEndDate: &end}
	if err := sd.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sd.ContractEndDate = &start
	if err := sd.Validate(); err == nil {
		t.Fatalf("expected error when end date equals start date")
	}
}

func TestReleaseDateRegion(t *testing.T) {
	rd := &ReleaseDate{ShowID: 1, DistributorID: 1, ReleaseDate: time.Now(), Region: "US"}
	if err := rd.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rd.Region = RegionGlobal
	if err := rd.Validate(); err != nil {
		t.Fatalf("unexpected error for global region: %v", err)
	}

	for _, region := range []string{"", "us", "USA", "U1"} {
		rd.Region = region
		if err := rd.Validate(); err == nil {
			t.Fatalf("expected error for region %q", region)
		}
	}
}
