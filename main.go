// @title SkillForge 后端 API
// @version 1.0
// @description 技能练习记录、经验与等级服务。

// @host localhost:5000
// @BasePath /api

package main

import (
	"os"

	"skillforge_backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
