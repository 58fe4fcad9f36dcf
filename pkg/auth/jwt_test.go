package auth_test

import (
	"strconv"
	"testing"

	"stock_insight/pkg/auth"
	"stock_insight/pkg/config"
)

func setupTestConfig() {
	config.GlobalConfig = &config.Config{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "admin-pass",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	setupTestConfig()

	token, err := auth.GenerateToken("user@example.com", auth.RoleUser)
	if err != nil {
		t.Fatalf("生成token失败: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("验证token失败: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("邮箱错误: %s", claims.Email)
	}
	if claims.Role != auth.RoleUser {
		t.Errorf("角色错误: %s", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	setupTestConfig()

	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Error("非法token应验证失败")
	}
}

func TestValidateAdminCredentials(t *testing.T) {
	setupTestConfig()

	if !auth.ValidateAdminCredentials("admin", "admin-pass") {
		t.Error("正确的管理员凭据应通过")
	}
	if auth.ValidateAdminCredentials("admin", "wrong") {
		t.Error("错误密码不应通过")
	}

	// 未配置密码时一律拒绝
	config.GlobalConfig.AdminPassword = ""
	if auth.ValidateAdminCredentials("admin", "") {
		t.Error("密码未配置时不应通过")
	}
}

func TestNewCaptcha(t *testing.T) {
	for i := 0; i < 50; i++ {
		c := auth.NewCaptcha("captcha-id")
		if c.ID != "captcha-id" {
			t.Fatalf("验证码ID错误: %s", c.ID)
		}
		if c.Question == "" {
			t.Fatal("验证码题目不能为空")
		}
		answer, err := strconv.Atoi(c.Answer())
		if err != nil {
			t.Fatalf("答案应为数字: %v", err)
		}
		if answer < 0 || answer > 18 {
			t.Errorf("答案超出范围: %d", answer)
		}
	}
}
