// Package pb holds the gRPC types for the order service. The types are
// hand-maintained and exchanged with the JSON codec (see codec.go);
// clients select it with grpc.CallContentSubtype(pb.Name).
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Side int32

const (
	Side_BUY  Side = 0
	Side_SELL Side = 1
)

type OrderType int32

const (
	OrderType_GOOD_TILL_CANCEL OrderType = 0
	OrderType_FILL_AND_KILL    OrderType = 1
)

type PlaceOrderRequest struct {
	OrderId uint64    `json:"order_id"`
	Side    Side      `json:"side"`
	Type    OrderType `json:"type"`
	Price   int64     `json:"price"`
	Qty     int64     `json:"qty"`
}

type PlaceOrderResponse struct {
	Seq    uint64   `json:"seq"`
	Trades []*Trade `json:"trades"`
}

type CancelOrderRequest struct {
	OrderId uint64 `json:"order_id"`
}

type CancelOrderResponse struct {
	Seq uint64 `json:"seq"`
}

type ModifyOrderRequest struct {
	OrderId uint64 `json:"order_id"`
	Side    Side   `json:"side"`
	Price   int64  `json:"price"`
	Qty     int64  `json:"qty"`
}

type ModifyOrderResponse struct {
	Seq    uint64   `json:"seq"`
	Trades []*Trade `json:"trades"`
}

type TradeLeg struct {
	OrderId uint64 `json:"order_id"`
	Price   int64  `json:"price"`
	Qty     int64  `json:"qty"`
}

type Trade struct {
	Bid *TradeLeg `json:"bid"`
	Ask *TradeLeg `json:"ask"`
}

type GetDepthRequest struct{}

type DepthLevel struct {
	Price int64 `json:"price"`
	Qty   int64 `json:"qty"`
}

type GetDepthResponse struct {
	Bids []*DepthLevel `json:"bids"`
	Asks []*DepthLevel `json:"asks"`
}

type GetSizeRequest struct{}

type GetSizeResponse struct {
	Size int64 `json:"size"`
}

// OrderServiceServer is the server API for OrderService.
type OrderServiceServer interface {
	PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error)
	ModifyOrder(context.Context, *ModifyOrderRequest) (*ModifyOrderResponse, error)
	GetDepth(context.Context, *GetDepthRequest) (*GetDepthResponse, error)
	GetSize(context.Context, *GetSizeRequest) (*GetSizeResponse, error)
}

// UnimplementedOrderServiceServer can be embedded for forward
// compatible implementations.
type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) PlaceOrder(context.Context, *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PlaceOrder not implemented")
}

func (UnimplementedOrderServiceServer) CancelOrder(context.Context, *CancelOrderRequest) (*CancelOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelOrder not implemented")
}

func (UnimplementedOrderServiceServer) ModifyOrder(context.Context, *ModifyOrderRequest) (*ModifyOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ModifyOrder not implemented")
}

func (UnimplementedOrderServiceServer) GetDepth(context.Context, *GetDepthRequest) (*GetDepthResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDepth not implemented")
}

func (UnimplementedOrderServiceServer) GetSize(context.Context, *GetSizeRequest) (*GetSizeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSize not implemented")
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

func _OrderService_PlaceOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PlaceOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).PlaceOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lob.OrderService/PlaceOrder",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServiceServer).PlaceOrder(ctx, req.(*PlaceOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_CancelOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).CancelOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lob.OrderService/CancelOrder",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServiceServer).CancelOrder(ctx, req.(*CancelOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_ModifyOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ModifyOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).ModifyOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lob.OrderService/ModifyOrder",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServiceServer).ModifyOrder(ctx, req.(*ModifyOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_GetDepth_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDepthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).GetDepth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lob.OrderService/GetDepth",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServiceServer).GetDepth(ctx, req.(*GetDepthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderService_GetSize_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).GetSize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lob.OrderService/GetSize",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServiceServer).GetSize(ctx, req.(*GetSizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "lob.OrderService",
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PlaceOrder",
			Handler:    _OrderService_PlaceOrder_Handler,
		},
		{
			MethodName: "CancelOrder",
			Handler:    _OrderService_CancelOrder_Handler,
		},
		{
			MethodName: "ModifyOrder",
			Handler:    _OrderService_ModifyOrder_Handler,
		},
		{
			MethodName: "GetDepth",
			Handler:    _OrderService_GetDepth_Handler,
		},
		{
			MethodName: "GetSize",
			Handler:    _OrderService_GetSize_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/engine",
}
