package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabnap/tabnap/internal/domain/entity"
)

func TestMessageTypeClassification(t *testing.T) {
	assert.False(t, entity.MessageType("makeCoffee").Known())
	assert.True(t, entity.MsgSuspendAll.Known())

	assert.True(t, entity.MsgIsBulkOperationRunning.StatusQuery())
	assert.True(t, entity.MsgIsFaviconRefreshRunning.StatusQuery())
	assert.False(t, entity.MsgSuspendTab.StatusQuery())

	assert.True(t, entity.MsgSuspendTab.SingleTabOp())
	assert.True(t, entity.MsgUnsuspendTab.SingleTabOp())
	assert.False(t, entity.MsgSuspendSelected.SingleTabOp())
}

func TestSenderFromTab(t *testing.T) {
	assert.True(t, entity.Sender{Origin: "https://page.example", TabID: 3}.FromTab())
	assert.False(t, entity.Sender{Origin: "https://page.example"}.FromTab())
	assert.False(t, entity.Sender{TabID: entity.TabIDNone}.FromTab())
}

func TestResponseShape(t *testing.T) {
	ok := entity.OKResponse(map[string]any{"running": true})
	assert.True(t, ok.OK())
	assert.Empty(t, ok.ErrorMessage())
	assert.Equal(t, true, ok["running"])

	fail := entity.ErrResponse("nope")
	assert.False(t, fail.OK())
	assert.Equal(t, "nope", fail.ErrorMessage())
	_, hasSuccess := fail["success"]
	assert.False(t, hasSuccess)
}
