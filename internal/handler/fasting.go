package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fasting-tracker/internal/config"
	"fasting-tracker/internal/fasting"
	"fasting-tracker/internal/models"
	"fasting-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// FastingHandler 负责断食会话相关接口
type FastingHandler struct {
	Service       *fasting.Service
	HistoryLimit  int
	CalendarWeeks int
}

func NewFastingHandler(svc *fasting.Service, cfg config.AppSubConfig) *FastingHandler {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 10
	}
	weeks := cfg.CalendarWeeks
	if weeks <= 0 {
		weeks = fasting.DefaultWeekCount
	}
	return &FastingHandler{
		Service:       svc,
		HistoryLimit:  limit,
		CalendarWeeks: weeks,
	}
}

// ---------- 查询当前断食 ----------

// GetActive 返回进行中的断食和实时进度。
// 没有进行中的断食是正常状态，返回空 session 而不是错误。
func (h *FastingHandler) GetActive(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	session, err := h.Service.GetActive(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}
	if session == nil {
		util.Success(c, util.Response{"session": nil})
		return
	}

	util.Success(c, util.Response{
		"session":  session,
		"progress": fasting.Progress(session, h.Service.Now()),
	})
}

// ---------- 开始断食 ----------

type startFastReq struct {
	Protocol      string `json:"protocol" binding:"required"`
	DurationHours int    `json:"duration_hours" binding:"required"`
}

func (h *FastingHandler) Start(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	var req startFastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "请选择断食方案和时长")
		return
	}

	session, err := h.Service.Start(user.ID, req.Protocol, req.DurationHours)
	switch {
	case errors.Is(err, fasting.ErrInvalidProtocol):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "无效的断食方案或时长")
	case errors.Is(err, fasting.ErrActiveSessionExists):
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "你已有一个进行中的断食")
	case err != nil:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建失败，请重试")
	default:
		util.Success(c, util.Response{"session": session})
	}
}

// ---------- 完成 / 取消 ----------

func (h *FastingHandler) End(c *gin.Context) {
	h.finish(c, false)
}

// Cancel 和 End 一样，只是状态变成 cancelled。
// 「确定要取消吗」这类确认是前端的事，服务端不拦。
func (h *FastingHandler) Cancel(c *gin.Context) {
	h.finish(c, true)
}

func (h *FastingHandler) finish(c *gin.Context, cancel bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	var (
		session *models.FastingSession
		err     error
	)
	if cancel {
		session, err = h.Service.Cancel(user.ID)
	} else {
		session, err = h.Service.End(user.ID)
	}

	switch {
	case errors.Is(err, fasting.ErrNoActiveSession):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "没有进行中的断食")
	case errors.Is(err, fasting.ErrActiveSessionAnomaly):
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "数据异常：存在多条进行中的断食")
	case err != nil:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "操作失败，请重试")
	default:
		util.Success(c, util.Response{"session": session})
	}
}

// ---------- 历史记录 ----------

// History 返回最近的断食记录，新的在前。?limit=N，默认 10。
func (h *FastingHandler) History(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.HistoryLimit)))
	if limit <= 0 || limit > 100 {
		limit = h.HistoryLimit
	}

	sessions, err := h.Service.History(user.ID, limit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	util.Success(c, util.Response{
		"items": sessions,
		"total": len(sessions),
	})
}

// ---------- 统计 ----------

func (h *FastingHandler) Stats(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	sessions, err := h.Service.Sessions(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	stats := fasting.ComputeStats(sessions, h.Service.Now())
	util.Success(c, util.Response{"stats": stats})
}

// ---------- 周历 ----------

// Calendar 返回周历视图。?weeks=N，默认 8 周，含当前周。
func (h *FastingHandler) Calendar(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return
	}

	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", strconv.Itoa(h.CalendarWeeks)))
	if weeks <= 0 || weeks > 52 {
		weeks = h.CalendarWeeks
	}

	sessions, err := h.Service.Sessions(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	grid := fasting.ProjectWeeks(sessions, h.Service.Now(), weeks)
	util.Success(c, util.Response{"weeks": grid})
}

// ---------- 方案列表 ----------

// Protocols 返回支持的断食方案（封闭集合）。
func (h *FastingHandler) Protocols(c *gin.Context) {
	util.Success(c, util.Response{"protocols": fasting.Protocols})
}
