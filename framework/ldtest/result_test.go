package ldtest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestIDString(t *testing.T) {
	assert.Equal(t, "", TestID{}.String())
	assert.Equal(t, "add.tos", TestID{"add.tos"}.String())
	assert.Equal(t, "arith/add.tos", TestID{"arith", "add.tos"}.String())
}

func TestTestIDPlus(t *testing.T) {
	assert.Equal(t, TestID{"name 1"}, TestID{}.Plus("name 1"))
	assert.Equal(t, TestID{"name 1", "name 2"}, TestID{}.Plus("name 1").Plus("name 2"))

	// Calling Plus does not modify the original value
	id1 := TestID{"name 1"}
	id2a := id1.Plus("name 2a")
	id2b := id1.Plus("name 2b")
	assert.Equal(t, TestID{"name 1"}, id1)
	assert.Equal(t, TestID{"name 1", "name 2a"}, id2a)
	assert.Equal(t, TestID{"name 1", "name 2b"}, id2b)
}

func TestResultsOK(t *testing.T) {
	assert.True(t, Results{}.OK())
	assert.True(t, Results{Tests: []TestResult{{TestID: TestID{"a"}}}}.OK())
	assert.False(t, Results{Failures: []TestResult{{TestID: TestID{"a"}}}}.OK())
	assert.False(t, Results{Aborted: errors.New("gone")}.OK())
}

func TestTestFailureError(t *testing.T) {
	f := TestFailure{ID: TestID{"a.tos"}, Err: errors.New("mismatch")}
	assert.Equal(t, "[a.tos]: mismatch", f.Error())
}
