package core_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cofiy/pkg/core"
)

func TestDocumentSerialization(t *testing.T) {
	t.Run("Empty Document", func(t *testing.T) {
		data, err := json.Marshal(core.NewDocument())
		require.NoError(t, err)
		assert.JSONEq(t, `{"companies":[]}`, string(data))
	})

	t.Run("Zero Timestamps Are Omitted", func(t *testing.T) {
		data, err := json.Marshal(core.Company{ID: "c1", Name: "Acme", Notes: []core.Note{}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"c1","name":"Acme","notes":[]}`, string(data))
	})

	t.Run("Unknown Attachment Type Round Trips", func(t *testing.T) {
		in := `{"title":"x","fileName":"x.bin","type":"Archive","filePath":"/x.bin"}`
		var a core.Attachment
		require.NoError(t, json.Unmarshal([]byte(in), &a))
		assert.Equal(t, core.AttachmentType("Archive"), a.Type)
		out, err := json.Marshal(a)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	})
}

func TestClone(t *testing.T) {
	doc := core.Document{Companies: []core.Company{{
		ID: "c1", Name: "Acme",
		Notes: []core.Note{{ID: "n1", Attachments: []core.Attachment{{FilePath: "/a"}}}},
	}}}
	cp := doc.Clone()
	cp.Companies[0].Name = "Other"
	cp.Companies[0].Notes[0].Attachments[0].FilePath = "/b"

	assert.Equal(t, "Acme", doc.Companies[0].Name)
	assert.Equal(t, "/a", doc.Companies[0].Notes[0].Attachments[0].FilePath)
}

func TestAddCompany(t *testing.T) {
	doc := core.NewDocument()
	require.NoError(t, doc.AddCompany(core.Company{ID: "c1", Name: "Acme"}))
	assert.True(t, doc.HasCompany("c1"))
	assert.NotNil(t, doc.Companies[0].Notes)

	err := doc.AddCompany(core.Company{ID: "c1", Name: "Other"})
	require.ErrorIs(t, err, core.ErrDuplicateCompany)
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Acme", verr.Name)

	assert.ErrorIs(t, doc.AddCompany(core.Company{Name: "No ID"}), core.ErrInvalidRecord)
	assert.Len(t, doc.Companies, 1)
}

func TestAddNoteAndAttachment(t *testing.T) {
	doc := core.NewDocument()
	require.NoError(t, doc.AddCompany(core.Company{ID: "c1", Name: "Acme"}))

	require.NoError(t, doc.AddNote("c1", core.Note{ID: "n1", Title: "Kickoff"}))
	assert.Equal(t, core.PriorityNormal, doc.Companies[0].Notes[0].Priority)

	assert.ErrorIs(t, doc.AddNote("c1", core.Note{ID: "n1"}), core.ErrInvalidRecord)
	assert.ErrorIs(t, doc.AddNote("c9", core.Note{ID: "n2"}), core.ErrCompanyNotFound)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := core.NewAttachment("/tmp/contract.pdf", "", "", now)
	require.NoError(t, doc.AddAttachment("c1", "n1", a))
	assert.Equal(t, now, doc.Companies[0].Notes[0].UpdatedAt)
	assert.Equal(t, 1, doc.Companies[0].AttachmentCount())

	assert.ErrorIs(t, doc.AddAttachment("c1", "n9", a), core.ErrNoteNotFound)
}

func TestEachAttachmentOrder(t *testing.T) {
	doc := core.Document{Companies: []core.Company{
		{ID: "c1", Notes: []core.Note{
			{ID: "n1", Attachments: []core.Attachment{{FilePath: "1"}, {FilePath: "2"}}},
			{ID: "n2", Attachments: []core.Attachment{{FilePath: "3"}}},
		}},
		{ID: "c2", Notes: []core.Note{{ID: "n1", Attachments: []core.Attachment{{FilePath: "4"}}}}},
	}}

	var seen []string
	doc.EachAttachment(func(c *core.Company, n *core.Note, a *core.Attachment) {
		seen = append(seen, c.ID+"/"+n.ID+"/"+a.FilePath)
		a.Title = "visited"
	})
	assert.Equal(t, []string{"c1/n1/1", "c1/n1/2", "c1/n2/3", "c2/n1/4"}, seen)
	assert.Equal(t, "visited", doc.Companies[1].Notes[0].Attachments[0].Title)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &core.ValidationError{Err: core.ErrMultipleCompaniesInZip, Count: 2}
	assert.Contains(t, err.Error(), "found 2")

	err = &core.ValidationError{Err: core.ErrDuplicateCompany, CompanyID: "c1", Name: "Acme"}
	assert.Equal(t, "company already exists: Acme (id c1)", err.Error())
}
