// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"github.com/gin-gonic/gin"

	"github.com/mlnoga/patternscore/internal/ops"
	"github.com/mlnoga/patternscore/internal/ops/pre"
	"github.com/mlnoga/patternscore/internal/ops/score"
)


func Serve(addr string) {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",  getPing)
			v1.POST("/score", postScore)
		}
	}
	r.Run(addr)
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m,err:=json.MarshalIndent(args, "", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

type postScoreArgs struct {
	FilePatterns []string             `json:"filePatterns"`
	MaxDim        int32               `json:"maxDim"`
	PatternScore *score.OpPatternScore `json:"patternScore"`
}

type scoreResult struct {
	ID       int     `json:"id"`
	FileName string  `json:"fileName"`
	Score    float32 `json:"score"`
}

// Scores all images matching the posted filename patterns. Streams the
// processing log as plain text, followed by a JSON array of per-file results
func postScore(c *gin.Context) {
	logWriter := c.Writer
	var args postScoreArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}
	if args.PatternScore==nil {
		args.PatternScore=score.NewOpPatternScoreDefaults()
	}

	header := logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	if err:=printArgs(logWriter, "Arguments:\n", "\n", args); err!=nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}

	seq:=ops.NewOpSequence(
		ops.NewOpLoadMany(args.FilePatterns),
		pre.NewOpResize(args.MaxDim),
		args.PatternScore,
	)

	ctx:=ops.NewContext(logWriter)
	promises, err:=seq.MakePromises(nil, ctx)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		return
	}

	frames, err:=ops.MaterializeAll(promises, ctx.MaxThreads, false)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
	}

	results:=make([]scoreResult, len(frames))
	for i,f:=range frames {
		results[i]=scoreResult{ID: f.ID, FileName: f.FileName, Score: f.Scores[score.ScoreKey]}
	}
	printArgs(logWriter, "Results:\n", "\n", results)
	logWriter.(http.Flusher).Flush()
}
