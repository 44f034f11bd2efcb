package entity_test

import (
	"strings"
	"testing"

	"github.com/pyama86/YAIB/domain/entity"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestSummaryEncode(t *testing.T) {
	summary := entity.Summary{
		Description: "Hello",
		Priority:    "P1",
		CommsLead:   "U1",
		TechLead:    "U2",
		SupportLead: "U3",
	}
	want := "Description: Hello\n Priority: P1\n Comms lead: <@U1>\n Tech lead: <@U2>\n Support lead: <@U3>"
	assert.Equal(t, want, summary.Encode())
}

func TestSummaryEncodeCapitalizesDescription(t *testing.T) {
	summary := entity.Summary{Description: "database outage", Priority: "P2"}
	assert.True(t, strings.HasPrefix(summary.Encode(), "Description: Database outage\n"))
}

func TestSummaryEncodeAlwaysFiveLines(t *testing.T) {
	summary := entity.Summary{Description: "x", Priority: "P3", TechLead: "U2"}
	encoded := summary.Encode()
	lines := strings.Split(encoded, "\n")
	assert.Len(t, lines, 5)
	// リード未指定でもラベル行は残る
	assert.Contains(t, encoded, "\n Comms lead: \n")
	assert.Contains(t, encoded, "\n Tech lead: <@U2>\n")
}

func TestMergeSummaryEmptyUpdateIsIdentity(t *testing.T) {
	topic := entity.Summary{
		Description: "Hello",
		Priority:    "P1",
		CommsLead:   "U1",
		TechLead:    "U2",
		SupportLead: "U3",
	}.Encode()

	assert.Equal(t, topic, entity.MergeSummary(topic, entity.IncidentUpdateRequest{}))
}

func TestMergeSummaryReplacesOnlyUpdatedLines(t *testing.T) {
	topic := entity.Summary{
		Description: "Hello",
		Priority:    "P2",
		CommsLead:   "U1",
		TechLead:    "U2",
		SupportLead: "U3",
	}.Encode()

	merged := entity.MergeSummary(topic, entity.IncidentUpdateRequest{Priority: ptr("P1")})
	want := entity.Summary{
		Description: "Hello",
		Priority:    "P1",
		CommsLead:   "U1",
		TechLead:    "U2",
		SupportLead: "U3",
	}.Encode()
	assert.Equal(t, want, merged)
}

func TestMergeSummaryReplacesLeads(t *testing.T) {
	topic := entity.Summary{Description: "Hello", Priority: "P1", CommsLead: "U1"}.Encode()

	merged := entity.MergeSummary(topic, entity.IncidentUpdateRequest{
		CommsLead:   ptr("U9"),
		SupportLead: ptr("U5"),
	})
	assert.Contains(t, merged, "Comms lead: <@U9>")
	assert.Contains(t, merged, "Support lead: <@U5>")
	// 未指定のリードは元のまま
	assert.NotContains(t, merged, "U1>")
	assert.Equal(t, "Description: Hello", strings.Split(merged, "\n")[0])
}

func TestMergeSummaryPadsShortTopics(t *testing.T) {
	// 手で書き換えられたトピックでも行位置は守る
	merged := entity.MergeSummary("Description: X", entity.IncidentUpdateRequest{Priority: ptr("P2")})
	lines := strings.Split(merged, "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "Description: X", lines[0])
	assert.Equal(t, "Priority: P2", strings.TrimSpace(lines[1]))
}

func TestInviteAdditions(t *testing.T) {
	update := entity.IncidentUpdateRequest{
		CommsLead:   ptr("U1"),
		TechLead:    ptr("U2"),
		SupportLead: ptr("U3"),
	}

	t.Run("orders comms tech support", func(t *testing.T) {
		additions := entity.InviteAdditions(update, nil)
		assert.Equal(t, []string{"U1", "U2", "U3"}, additions)
	})

	t.Run("skips existing members", func(t *testing.T) {
		additions := entity.InviteAdditions(update, []string{"U2"})
		assert.Equal(t, []string{"U1", "U3"}, additions)
	})

	t.Run("skips unset and empty leads", func(t *testing.T) {
		additions := entity.InviteAdditions(entity.IncidentUpdateRequest{
			CommsLead: ptr(""),
			TechLead:  ptr("U2"),
		}, nil)
		assert.Equal(t, []string{"U2"}, additions)
	})

	t.Run("empty once everyone is a member", func(t *testing.T) {
		members := []string{"U0"}
		members = append(members, entity.InviteAdditions(update, members)...)
		assert.Empty(t, entity.InviteAdditions(update, members))
	})
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello", entity.Capitalize("hello"))
	assert.Equal(t, "Hello", entity.Capitalize("Hello"))
	assert.Equal(t, "", entity.Capitalize(""))
	assert.Equal(t, "Éclair", entity.Capitalize("éclair"))
}
