package controllers

// 测试用：导出提示语给 controllers_test 包
const (
	MsgAccountNotFound = msgAccountNotFound
	MsgBorrowOK        = msgBorrowOK
	MsgInsufficient    = msgInsufficient
	MsgCancelOK        = msgCancelOK
	MsgOnlyPending     = msgOnlyPending
	MsgStatusUpdated   = msgStatusUpdated
	MsgBadTransition   = msgBadTransition
)
