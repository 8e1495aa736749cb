package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// PurgeFields 提供清理范围、来源 URL 与实际删除路径字段，供执行器日志复用。
func PurgeFields(scope, url, target string) logrus.Fields {
	return logrus.Fields{
		"action": "purge",
		"scope":  scope,
		"url":    url,
		"target": target,
	}
}

// EventFields 描述一次宿主事件的来源与状态变更。
func EventFields(source, oldStatus, newStatus, contentType string) logrus.Fields {
	return logrus.Fields{
		"action":       "content_event",
		"source":       source,
		"old_status":   oldStatus,
		"new_status":   newStatus,
		"content_type": contentType,
	}
}
