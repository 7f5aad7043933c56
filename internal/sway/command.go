package sway

import (
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// FocusCommand returns the command that focuses the container with id.
func FocusCommand(id int64) string {
	return "[con_id=" + strconv.FormatInt(id, 10) + "] focus"
}

// CommandResult is one entry of a RUN_COMMAND reply.
type CommandResult struct {
	Success bool
	Error   string
}

// ParseCommandReply decodes the array sway returns for RUN_COMMAND.
func ParseCommandReply(payload []byte) ([]CommandResult, error) {
	var results []CommandResult
	_, err := jsonparser.ArrayEach(payload, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType != jsonparser.Object {
			return
		}
		var res CommandResult
		res.Success, _ = jsonparser.GetBoolean(value, "success")
		res.Error, _ = jsonparser.GetString(value, "error")
		results = append(results, res)
	})
	if err != nil {
		return nil, fmt.Errorf("parse command reply: %w", err)
	}
	return results, nil
}
