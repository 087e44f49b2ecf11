package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTaskType is returned when a task type string is not recognized.
var ErrUnknownTaskType = errors.New("unknown task type")

// ErrUnknownDeploymentTarget is returned when a deployment target string is
// not recognized.
var ErrUnknownDeploymentTarget = errors.New("unknown deployment target")

// TaskType is what kind of task the fine-tuned model should handle.
type TaskType string

const (
	TaskClassify     TaskType = "classify"
	TaskQA           TaskType = "qa"
	TaskConversation TaskType = "conversation"
	TaskGeneration   TaskType = "generation"
	TaskExtraction   TaskType = "extraction"
)

// TaskTypes lists every supported task type in declaration order.
func TaskTypes() []TaskType {
	return []TaskType{TaskClassify, TaskQA, TaskConversation, TaskGeneration, TaskExtraction}
}

// ParseTaskType converts a string value to a TaskType.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TaskTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of classify, qa, conversation, generation, extraction)", ErrUnknownTaskType, s)
}

// DeploymentTarget is where the trained model will run.
type DeploymentTarget string

const (
	DeployCloud   DeploymentTarget = "cloud"
	DeployServer  DeploymentTarget = "server"
	DeployDesktop DeploymentTarget = "desktop"
	DeployEdge    DeploymentTarget = "edge"
	DeployMobile  DeploymentTarget = "mobile"
	DeployBrowser DeploymentTarget = "browser"
)

// DeploymentTargets lists every supported deployment target in declaration order.
func DeploymentTargets() []DeploymentTarget {
	return []DeploymentTarget{DeployCloud, DeployServer, DeployDesktop, DeployEdge, DeployMobile, DeployBrowser}
}

// ParseDeploymentTarget converts a string value to a DeploymentTarget.
func ParseDeploymentTarget(s string) (DeploymentTarget, error) {
	d := DeploymentTarget(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DeploymentTargets() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of cloud, server, desktop, edge, mobile, browser)", ErrUnknownDeploymentTarget, s)
}
